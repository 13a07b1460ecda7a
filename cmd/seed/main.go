package main

import (
	"fmt"
	"log"
	"strings"

	"mediahub/internal/config"
	"mediahub/internal/database"
	"mediahub/internal/domain"
	"mediahub/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MediaFile{},
		&domain.Playlist{},
		&domain.PlaylistItem{},
		&domain.Like{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM likes")
	db.Exec("DELETE FROM playlist_items")
	db.Exec("DELETE FROM playlists")
	db.Exec("DELETE FROM media_files")
	db.Exec("DELETE FROM users")

	gateway := storage.NewLocal(cfg.UploadDir, cfg.StaticPrefix)

	// ================== USERS ==================
	log.Println("Creating users...")

	users := []domain.User{}
	for i, email := range []string{"alice@example.com", "bob@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("listen123"), bcrypt.DefaultCost)
		user := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Username:     fmt.Sprintf("listener%d", i+1),
		}
		db.Create(&user)
		users = append(users, user)
		log.Printf("User created: %s / listen123", email)
	}

	// ================== MEDIA ==================
	log.Println("Creating media files...")

	songs := []struct {
		title  string
		artist string
		album  string
	}{
		{"Night Drive", "The Velvets", "City Lights"},
		{"Morning Haze", "The Velvets", "City Lights"},
		{"Open Road", "Dust & Echo", "Milemarkers"},
	}

	var media []domain.MediaFile
	for i, s := range songs {
		owner := users[i%len(users)]
		fileName := strings.ReplaceAll(strings.ToLower(s.title), " ", "_") + ".mp3"
		objectPath := storage.ObjectPath(owner.ID, fileName)

		// Placeholder bytes so file_path resolves to a real object.
		if _, err := gateway.Put(cfg.MediaBucket, objectPath, strings.NewReader("seed audio placeholder")); err != nil {
			log.Fatal("seed object write failed:", err)
		}

		m := domain.MediaFile{
			UserID:   owner.ID,
			Title:    s.title,
			FileName: fileName,
			FilePath: objectPath,
			MimeType: "audio/mpeg",
			Tags:     []string{s.artist, s.album},
			IsPublic: true,
		}
		db.Create(&m)
		media = append(media, m)
	}

	// ================== PLAYLIST ==================
	log.Println("Creating playlist...")

	playlist := domain.Playlist{
		UserID:   users[0].ID,
		Title:    "Road Trip",
		IsPublic: true,
	}
	db.Create(&playlist)

	for i, m := range media {
		db.Create(&domain.PlaylistItem{
			PlaylistID:  playlist.ID,
			MediaFileID: m.ID,
			Position:    i + 1,
		})
	}

	// ================== LIKES ==================
	db.Create(&domain.Like{UserID: users[1].ID, MediaFileID: media[0].ID})

	log.Println("Seed complete.")
}
