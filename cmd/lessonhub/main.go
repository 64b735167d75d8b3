package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"
	"github.com/lessonhub-app/lessonhub/internal/app/bootstrap"

	// Feature view registration.
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/admin/views"
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/courses/views"
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/errors/views"
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/login/views"
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/pending/views"
	_ "github.com/lessonhub-app/lessonhub/internal/app/features/signup/views"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
