package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"

	"filingdesk/internal/config"
	"filingdesk/internal/model"
	"filingdesk/internal/repository"
)

// Seeds authored questionnaire schemas and mapping tables from YAML files:
//
//	<seed dir>/questionnaires/*.yaml -> questionnaires collection
//	<seed dir>/mappings/*.yaml       -> mapping_tables collection
func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	mappingRepo := repository.NewMappingRepo(db)

	seeded := 0
	for _, path := range yamlFiles(filepath.Join(cfg.SeedDir, "questionnaires")) {
		var q model.Questionnaire
		if err := decodeYAML(path, &q); err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		if err := questionnaireRepo.Upsert(ctx, &q); err != nil {
			log.Fatalf("Failed to seed questionnaire %s: %v", q.FormType, err)
		}
		log.Printf("Seeded questionnaire %s (v%d, %d sections)", q.FormType, q.Version, len(q.Sections))
		seeded++
	}

	for _, path := range yamlFiles(filepath.Join(cfg.SeedDir, "mappings")) {
		var table model.MappingTable
		if err := decodeYAML(path, &table); err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		if err := mappingRepo.Upsert(ctx, &table); err != nil {
			log.Fatalf("Failed to seed mapping table %s: %v", table.DocType, err)
		}
		log.Printf("Seeded mapping table %s (%d fields)", table.DocType, len(table.Fields))
		seeded++
	}

	log.Printf("Done: %d documents seeded", seeded)
}

func yamlFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: cannot read %s: %v", dir, err)
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths
}

func decodeYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
