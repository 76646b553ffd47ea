package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"websummarizer/internal/app"
	"websummarizer/internal/config"
	"websummarizer/internal/export"
	"websummarizer/internal/report"
)

// App struct
type App struct {
	ctx     context.Context
	service *app.Service
}

// NewApp creates a new App application struct
func NewApp() *App {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return &App{}
	}

	svc, err := app.NewService(cfg, log)
	if err != nil {
		fmt.Printf("Error initializing service: %v\n", err)
	}
	return &App{
		service: svc,
	}
}

// startup is called when the app starts. The context is saved
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// SummarizeParams exposed to frontend
type SummarizeParams struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
	Optimize   bool   `json:"optimize"`
	Model      string `json:"model"`
}

// Summarize runs the full pipeline for the frontend.
func (a *App) Summarize(p SummarizeParams) (*report.Report, error) {
	if a.service == nil {
		return nil, fmt.Errorf("backend service not initialized")
	}
	if p.Model != "" {
		a.service.SetModel(p.Model)
	}
	return a.service.Summarize(a.ctx, app.Request{
		Query:      p.Query,
		MaxResults: p.MaxResults,
		Optimize:   p.Optimize,
	})
}

// ListModels returns the model names served by the local endpoint so the
// frontend can populate its picker.
func (a *App) ListModels() ([]string, error) {
	if a.service == nil {
		return nil, fmt.Errorf("backend service not initialized")
	}
	return a.service.Models(a.ctx)
}

// SaveReportJSON writes the report as JSON to a user-chosen path.
func (a *App) SaveReportJSON(rep *report.Report) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		DefaultFilename: export.Filename(rep.OriginalQuery, "json"),
		Title:           "Save Report as JSON",
		Filters: []runtime.FileFilter{
			{DisplayName: "JSON Files (*.json)", Pattern: "*.json"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil // User cancelled
	}

	data, err := export.JSON(rep)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveReportMarkdown writes the report as Markdown to a user-chosen path.
func (a *App) SaveReportMarkdown(rep *report.Report) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		DefaultFilename: export.Filename(rep.OriginalQuery, "md"),
		Title:           "Save Report as Markdown",
		Filters: []runtime.FileFilter{
			{DisplayName: "Markdown Files (*.md)", Pattern: "*.md"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil // User cancelled
	}

	if err := os.WriteFile(path, []byte(export.Markdown(rep)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveReportDocx writes the report as a Word document to a user-chosen path.
func (a *App) SaveReportDocx(rep *report.Report) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		DefaultFilename: export.Filename(rep.OriginalQuery, "docx"),
		Title:           "Save Report as Word Document",
		Filters: []runtime.FileFilter{
			{DisplayName: "Word Documents (*.docx)", Pattern: "*.docx"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil // User cancelled
	}

	if err := export.Docx(rep, path); err != nil {
		return "", err
	}
	return path, nil
}
