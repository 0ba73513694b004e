// Seeds the question bank from a knowledge-base JSON file.
//
// The admin API offers the same import over HTTP; this script exists for
// first deployments, where the bank has to be loaded before anyone can
// log in as admin.
//
// Usage: go run scripts/import_questions.go -file knowledge_base.json

package main

import (
	"flag"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/repository"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/pkg/database"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	path := flag.String("file", "knowledge_base.json", "knowledge-base JSON file")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	// Only the database section matters here; env overrides stay the
	// server binary's business.
	var cfg struct {
		Database config.DatabaseConfig `yaml:"database"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	doc, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("cannot read %s: %v", *path, err)
	}

	svc := service.NewQuestionService(repository.NewQuestionRepository(db), &config.Config{})
	count, err := svc.ImportQuestions(doc)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("imported %d questions from %s", count, *path)
}
