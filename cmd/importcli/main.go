// Command importcli submits one document to the extraction backend, follows
// the task to completion, and prints the normalized result.
// Usage:
//
//	importcli -text "three nights at the Grand Mercure ..."
//	importcli -file quote.pdf -o result.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"tripdesk/internal/config"
	"tripdesk/internal/extraction"
	"tripdesk/internal/export"
	"tripdesk/internal/importer"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	text := flag.String("text", "", "free text to import")
	file := flag.String("file", "", "document file to import")
	out := flag.String("o", "", "write the normalized result as an xlsx workbook")
	confirm := flag.Bool("confirm", false, "confirm the parsed task into a catalog record")
	flag.Parse()

	if (*text == "") == (*file == "") {
		return fmt.Errorf("exactly one of -text or -file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := extraction.NewClient(&cfg.Backend)
	queue := importer.NewSubmissionQueue(backend, importer.QueueConfig{
		MinInterval:  cfg.Queue.MinInterval,
		BackoffStart: cfg.Queue.BackoffStart,
		BackoffCap:   cfg.Queue.BackoffCap,
		MaxAttempts:  cfg.Queue.MaxAttempts,
	})
	go queue.Start(ctx)
	defer queue.Close()

	tracker := importer.NewTracker(backend, cfg.Poll.Interval)
	svc := importer.NewService(backend, queue, tracker)

	input := importer.SubmissionInput{Text: *text}
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *file, err)
		}
		input = importer.SubmissionInput{FileName: filepath.Base(*file), FileData: data}
	}

	ref, err := svc.EnqueueSubmission(ctx, input)
	if err != nil {
		return fmt.Errorf("submitting: %w", err)
	}
	fmt.Printf("task %s submitted, waiting for extraction...\n", ref.ID)

	task, err := svc.AwaitTask(ctx, ref.ID)
	if err != nil {
		return fmt.Errorf("task %s: %w", ref.ID, err)
	}

	sku := svc.Normalize(task.SkuType, task.ExtractedFields, task.Evidence)

	fmt.Printf("\ncategory:   %s\n", sku.Category)
	fmt.Printf("cost price: %.2f\n", sku.Pricing.CostPrice)
	fmt.Printf("sell price: %.2f\n", sku.Pricing.SellPrice)
	if len(sku.Attributes) > 0 {
		fmt.Println("\nattributes:")
		for key, value := range sku.Attributes {
			fmt.Printf("  %-16s %s\n", key, value)
		}
	}
	if len(sku.DisplayFields) > 0 {
		fmt.Println("\nfields:")
		for _, field := range sku.DisplayFields {
			marker := " "
			if field.HasEvidence {
				marker = "*"
			}
			fmt.Printf("%s %-24s %s\n", marker, field.Label, field.Value)
		}
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *out, err)
		}
		defer func() { _ = f.Close() }()
		if err := export.WriteWorkbook(f, task, sku); err != nil {
			return fmt.Errorf("writing %s: %w", *out, err)
		}
		fmt.Printf("\nwrote %s\n", *out)
	}

	if *confirm {
		result, err := svc.ConfirmImport(ctx, importer.ConfirmInput{TaskID: task.ID})
		if err != nil {
			return fmt.Errorf("confirming task %s: %w", task.ID, err)
		}
		fmt.Printf("\nconfirmed: sku %s\n", result.SkuID)
	}

	return nil
}
