// Command seed создает группу и, при необходимости, пользователя.
// Группы в API доступны только на чтение, поэтому заводятся здесь.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/storage/gormdb"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

func main() {
	storageType := flag.String("storage", "postgres", "Тип хранилища: postgres или sqlite")
	title := flag.String("title", "", "Название группы")
	slug := flag.String("slug", "", "Slug группы")
	description := flag.String("description", "", "Описание группы")
	username := flag.String("username", "", "Имя пользователя (необязательно)")
	password := flag.String("password", "", "Пароль пользователя")
	flag.Parse()

	config.LoadEnv()
	dbCfg := config.LoadDatabase()

	dialect, dsn := gormdb.DialectPostgres, dbCfg.PostgresDSN()
	switch *storageType {
	case "postgres":
	case "sqlite":
		dialect, dsn = gormdb.DialectSQLite, dbCfg.SQLitePath
	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	db, err := gormdb.InitDB(dialect, dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer gormdb.CloseDB(db)

	if err := gormdb.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()

	if *title != "" || *slug != "" {
		if *title == "" || *slug == "" {
			log.Fatal("both -title and -slug are required for a group")
		}

		g := &models.Group{Title: *title, Slug: *slug, Description: *description}
		err := gormdb.NewGroupGormStorage(db).CreateGroup(ctx, g)
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			log.Printf("группа со slug %q уже существует", *slug)
		case err != nil:
			log.Fatalf("failed to create group: %v", err)
		default:
			log.Printf("создана группа %q (id=%d)", g.Slug, g.ID)
		}
	}

	if *username != "" {
		users := user.NewService(gormdb.NewUserGormStorage(db), nil)
		u, err := users.Register(ctx, user.Registration{Username: username, Password: password})
		if err != nil {
			log.Fatalf("failed to create user: %v", err)
		}
		log.Printf("создан пользователь %q (id=%d)", u.Username, u.ID)
	}
}
