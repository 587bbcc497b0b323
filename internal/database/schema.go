package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres port of the red_social schema. Table and column names are kept
// from the production database; the uniqueness rules the services rely on
// live here, not in application pre-checks:
//   - usuarios.email unique
//   - amistades unique on the unordered user pair
//   - me_gusta unique on (usuario_id, publicacion_id)
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id UUID PRIMARY KEY,
		nombre TEXT NOT NULL,
		apellido TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		fecha_nacimiento DATE,
		ubicacion TEXT NOT NULL DEFAULT '',
		biografia TEXT NOT NULL DEFAULT '',
		imagen_perfil TEXT,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS amistades (
		id UUID PRIMARY KEY,
		usuario1_id UUID NOT NULL REFERENCES usuarios(id),
		usuario2_id UUID NOT NULL REFERENCES usuarios(id),
		estado TEXT NOT NULL DEFAULT 'pendiente'
			CHECK (estado IN ('pendiente', 'aceptada', 'rechazada')),
		fecha_solicitud TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (usuario1_id <> usuario2_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS amistades_par_unico
		ON amistades (LEAST(usuario1_id, usuario2_id), GREATEST(usuario1_id, usuario2_id))`,

	`CREATE TABLE IF NOT EXISTS publicaciones (
		id UUID PRIMARY KEY,
		usuario_id UUID NOT NULL REFERENCES usuarios(id),
		contenido TEXT NOT NULL,
		tipo TEXT NOT NULL DEFAULT 'texto'
			CHECK (tipo IN ('texto', 'imagen', 'video')),
		url_media TEXT,
		fecha_publicacion TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		activa BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS publicaciones_fecha_idx
		ON publicaciones (fecha_publicacion DESC)`,

	`CREATE TABLE IF NOT EXISTS me_gusta (
		usuario_id UUID NOT NULL REFERENCES usuarios(id),
		publicacion_id UUID NOT NULL REFERENCES publicaciones(id),
		fecha_like TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (usuario_id, publicacion_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comentarios (
		id UUID PRIMARY KEY,
		publicacion_id UUID NOT NULL REFERENCES publicaciones(id),
		usuario_id UUID NOT NULL REFERENCES usuarios(id),
		contenido TEXT NOT NULL,
		fecha_comentario TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		activo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS comentarios_publicacion_idx
		ON comentarios (publicacion_id, fecha_comentario)`,

	`CREATE TABLE IF NOT EXISTS mensajes (
		id UUID PRIMARY KEY,
		emisor_id UUID NOT NULL REFERENCES usuarios(id),
		receptor_id UUID NOT NULL REFERENCES usuarios(id),
		contenido TEXT NOT NULL,
		fecha_envio TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		leido BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS mensajes_emisor_idx ON mensajes (emisor_id, fecha_envio DESC)`,
	`CREATE INDEX IF NOT EXISTS mensajes_receptor_idx ON mensajes (receptor_id, fecha_envio DESC)`,
}

// Migrate applies the schema. Every statement is idempotent, so it is safe
// to run on startup against an already-migrated database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return tx.Commit(ctx)
}
