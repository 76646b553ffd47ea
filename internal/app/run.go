package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"websummarizer/internal/config"
	"websummarizer/internal/export"
)

// Run is the interactive CLI mode: read a query, run the pipeline, print the
// report and write the export files next to the binary.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	svc, err := NewService(cfg, log)
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Model listing is a best-effort preflight; a dead endpoint will fail
	// properly once the pipeline calls it.
	if models, err := svc.Models(ctx); err == nil && len(models) > 0 {
		fmt.Println("Available models:", strings.Join(models, ", "))
		fmt.Println("Using model:", svc.Model())
	} else if err != nil {
		log.Warn().Err(err).Msg("model endpoint not reachable yet")
	}

	in := bufio.NewReader(os.Stdin)

	// 1) Query input + validation
	var query string
	for {
		fmt.Println("Enter your search query (sentence or keywords).")
		fmt.Println("Submit with a blank line.")
		fmt.Print("> ")

		q, err := readMultiline(in)
		if err != nil {
			return err
		}
		q = strings.TrimSpace(q)

		if ok, reason := validateQuery(q); !ok {
			fmt.Printf("Invalid input (%s). Please try again.\n\n", reason)
			continue
		}

		query = q
		break
	}

	// 2) Result count
	fmt.Printf("\nHow many results? (%d-%d, default %d): ", config.MinResults, config.MaxResultsCap, cfg.MaxResults)
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)

	maxResults := cfg.MaxResults
	if line != "" {
		var tmp int
		if _, err := fmt.Sscanf(line, "%d", &tmp); err == nil && tmp >= config.MinResults && tmp <= config.MaxResultsCap {
			maxResults = tmp
		} else {
			fmt.Printf("Ignoring %q, using default %d.\n", line, maxResults)
		}
	}

	// 3) Pipeline
	fmt.Println("\nSearching and summarizing, this can take a while...")
	rep, err := svc.Summarize(ctx, Request{
		Query:      query,
		MaxResults: maxResults,
		Optimize:   cfg.OptimizeQuery,
	})
	if err != nil {
		return err
	}

	// 4) Print
	if rep.OptimizedQuery != rep.OriginalQuery {
		fmt.Println("\nOptimized query:", rep.OptimizedQuery)
	}
	fmt.Printf("\nSummarized %d page(s):\n", len(rep.PageSummaries))
	for i, s := range rep.PageSummaries {
		fmt.Printf("%2d) %s\n    %s\n", i+1, s.Title, s.URL)
	}
	for _, f := range rep.Failures {
		fmt.Printf(" -  skipped %s (%s: %s)\n", f.URL, f.Stage, f.Reason)
	}

	fmt.Println("\n===== Consolidated Summary =====")
	fmt.Println(rep.ConsolidatedText)

	// 5) Exports
	jsonName := export.Filename(rep.OriginalQuery, "json")
	data, err := export.JSON(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonName, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", jsonName, err)
	}

	mdName := export.Filename(rep.OriginalQuery, "md")
	if err := os.WriteFile(mdName, []byte(export.Markdown(rep)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", mdName, err)
	}

	fmt.Printf("\nExports written: %s, %s\n", jsonName, mdName)
	return nil
}

// ===== Input helpers =====

func readMultiline(r *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
			break
		}

		line = strings.TrimRight(line, "\r\n")
		trim := strings.TrimSpace(line)

		if trim == "" {
			if len(lines) > 0 {
				break
			}
			fmt.Print("> ")
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

var (
	reDigitsPunctOnly = regexp.MustCompile(`^[\d\pP\pS\s]+$`)
	reWordToken       = regexp.MustCompile(`\pL{3,}`)
)

func validateQuery(q string) (bool, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return false, "empty"
	}
	if reDigitsPunctOnly.MatchString(q) {
		return false, "no words detected"
	}
	if !reWordToken.MatchString(q) {
		return false, "no real word token found"
	}

	total := 0
	letters := 0
	for _, r := range q {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return false, "empty"
	}
	if float64(letters)/float64(total) < 0.30 {
		return false, "too many non-letter characters"
	}
	return true, ""
}
