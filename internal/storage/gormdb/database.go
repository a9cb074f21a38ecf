package gormdb

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/VitaminP8/yatube/models"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// InitDB открывает соединение с базой данных выбранного диалекта
func InitDB(dialect, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if dialect == DialectSQLite {
		// одно соединение: иначе каждое новое соединение к :memory: видит пустую базу
		db.DB().SetMaxOpenConns(1)
		db.Exec("PRAGMA foreign_keys = ON")
	}
	return db, nil
}

// Migrate создает таблицы, уникальные индексы и, для postgres, внешние ключи
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if db.Dialect().GetName() != DialectPostgres {
		return nil
	}

	foreignKeys := []struct {
		model    interface{}
		field    string
		dest     string
		onDelete string
	}{
		{&models.Post{}, "author_id", "users(id)", "CASCADE"},
		{&models.Post{}, "group_id", "groups(id)", "SET NULL"},
		{&models.Comment{}, "author_id", "users(id)", "CASCADE"},
		{&models.Comment{}, "post_id", "posts(id)", "CASCADE"},
		{&models.Follow{}, "user_id", "users(id)", "CASCADE"},
		{&models.Follow{}, "following_id", "users(id)", "CASCADE"},
	}
	for _, fk := range foreignKeys {
		err := db.Model(fk.model).AddForeignKey(fk.field, fk.dest, fk.onDelete, "CASCADE").Error
		if err != nil {
			return fmt.Errorf("failed to add foreign key %s: %w", fk.field, err)
		}
	}
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}
	return nil
}
