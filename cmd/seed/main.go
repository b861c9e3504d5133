package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stemsi/lms-backend/internal/config"
	"github.com/stemsi/lms-backend/internal/database"
	"github.com/stemsi/lms-backend/internal/logger"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	instructorRepo := repository.NewInstructorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)

	fmt.Println("=== Seeding demo instructor ===")

	instructor, err := instructorRepo.GetByEmail(ctx, "dewi.lestari@example.com")
	if errors.Is(err, repository.ErrNotFound) {
		instructor = &model.Instructor{Name: "Dewi Lestari", Email: "dewi.lestari@example.com"}
		if err := instructorRepo.Create(ctx, instructor); err != nil {
			log.Fatal().Err(err).Msg("Failed to create instructor")
		}
		fmt.Printf("Created instructor with ID: %d\n", instructor.ID)
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up instructor")
	} else {
		fmt.Printf("Found existing instructor with ID: %d\n", instructor.ID)
	}

	fmt.Println("=== Seeding courses ===")

	courses := []model.Course{
		{Title: "Physics 101", Description: "Motion, forces and energy", ClassLevel: "10", Category: "science", Status: "Published"},
		{Title: "Algebra Foundations", Description: "Linear equations and factoring", ClassLevel: "10", Category: "math", Status: "Published"},
		{Title: "World History", Description: "From antiquity to the modern era", ClassLevel: "11", Category: "history"},
	}
	for i := range courses {
		courses[i].InstructorID = &instructor.ID
		if err := courseRepo.Create(ctx, &courses[i]); err != nil {
			log.Fatal().Err(err).Str("title", courses[i].Title).Msg("Failed to create course")
		}
		fmt.Printf("Created course %q with ID: %d\n", courses[i].Title, courses[i].ID)
	}

	fmt.Println("=== Seeding students ===")

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	}

	successCount := 0
	for i, name := range names {
		level := "10"
		if i%3 == 2 {
			level = "11"
		}
		student := &model.Student{
			Name:       name,
			Email:      fmt.Sprintf("student%d@example.com", i+1),
			ClassLevel: level,
		}

		err := studentRepo.Create(ctx, student)
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			fmt.Printf("Skipping %s: %s already exists\n", student.Name, student.Email)
		case err != nil:
			fmt.Printf("Error creating student %s: %v\n", student.Name, err)
		default:
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
