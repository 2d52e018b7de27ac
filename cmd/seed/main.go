// Command main seeds the database with sample users, blogs, comments and
// likes for local development.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.Blogs, "blogs", opts.Blogs, "number of blogs to create")
	flag.IntVar(&opts.CommentsPerBlog, "comments", opts.CommentsPerBlog, "comments per blog")
	flag.IntVar(&opts.LikesPerBlog, "likes", opts.LikesPerBlog, "max likes per blog")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed complete. All accounts use the password 'password123'.")
}
