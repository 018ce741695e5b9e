package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/sunthewhat/easy-cert-generator/internal/batch"
	"github.com/sunthewhat/easy-cert-generator/internal/ingest"
	"github.com/sunthewhat/easy-cert-generator/type/shared/model"
)

type generateOptions struct {
	templatePath     string
	participantsPath string
	layoutPath       string
	course           string
	prefix           string
	sentence         string
	verifyURL        string
	out              string
	workers          int
	abortOnError     bool
	disambiguate     bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render one certificate per participant into a zip archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			genCfg := cfg.Generation
			flags := cmd.Flags()
			if flags.Changed("course") {
				genCfg.CourseTitle = opts.course
			}
			if flags.Changed("prefix") {
				genCfg.IDPrefix = opts.prefix
			}
			if flags.Changed("sentence") {
				genCfg.FixedSentence = opts.sentence
			}
			if flags.Changed("verify-url") {
				genCfg.VerificationBaseURL = opts.verifyURL
			}

			tmpl, err := loadTemplate(opts.templatePath, opts.layoutPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(opts.participantsPath)
			if err != nil {
				return fmt.Errorf("failed to read participants: %w", err)
			}
			participants, err := ingest.ParseParticipants(filepath.Base(opts.participantsPath), data, genCfg.IDPrefix, time.Now())
			if err != nil {
				return err
			}

			r, err := buildRenderer(cfg)
			if err != nil {
				return err
			}
			bopts := batchOptions(cfg)
			if flags.Changed("workers") {
				bopts.Workers = opts.workers
			}
			if opts.abortOnError {
				bopts.Policy = batch.AbortOnError
			}
			if opts.disambiguate {
				bopts.Disambiguate = true
			}

			tracker := batch.NewTracker(func(p model.BatchProgress) {
				if p.Status == model.StatusRunning && p.Current != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "\r[%d/%d] %s", p.Completed, p.Total, p.Current)
				}
			})

			result, err := batch.New(r, bopts).GenerateBatch(cmd.Context(), tmpl, genCfg, participants, tracker)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("%s: %w", batch.UserMessage, err)
			}

			out := opts.out
			if out == "" {
				out = result.ArchiveName
			}
			if err := os.WriteFile(out, result.Archive, 0o644); err != nil {
				return fmt.Errorf("failed to write archive: %w", err)
			}

			for _, item := range result.Failures() {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s (%s): %v\n", item.Participant.Name, item.Participant.VerificationID, item.Err)
			}
			for _, name := range result.Collisions {
				fmt.Fprintf(cmd.ErrOrStderr(), "overwritten: %s\n", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d generated, %d failed\n", out, result.Generated, result.Failed)

			slog.Debug("Archive written", "path", out, "bytes", len(result.Archive))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.templatePath, "template", "t", "", "Background image (png, jpeg, gif, webp)")
	f.StringVarP(&opts.participantsPath, "participants", "p", "", "Participant list (.xlsx or .csv, names in the first column)")
	f.StringVarP(&opts.layoutPath, "layout", "l", "", "Field layout YAML; the default layout is used when empty")
	f.StringVar(&opts.course, "course", "", "Course title")
	f.StringVar(&opts.prefix, "prefix", "", "Certificate id prefix")
	f.StringVar(&opts.sentence, "sentence", "", "Fixed sentence")
	f.StringVar(&opts.verifyURL, "verify-url", "", "Verification base URL")
	f.StringVarP(&opts.out, "out", "o", "", "Output zip path (default certificates-<course>.zip)")
	f.IntVarP(&opts.workers, "workers", "w", 1, "Render workers")
	f.BoolVar(&opts.abortOnError, "abort-on-error", false, "Stop at the first failed participant")
	f.BoolVar(&opts.disambiguate, "disambiguate", false, "Append the certificate id to duplicate file names")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("participants")
	return cmd
}

func loadTemplate(imagePath, layoutPath string) (*model.Template, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	tmpl, err := ingest.DecodeTemplate(filepath.Base(imagePath), data)
	if err != nil {
		return nil, err
	}
	if layoutPath == "" {
		return tmpl, nil
	}

	layout, err := os.ReadFile(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	fields, err := ingest.LoadLayout(layout)
	if err != nil {
		return nil, err
	}
	tmpl.Fields = fields
	return tmpl, nil
}
