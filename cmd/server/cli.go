package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/themobileprof/healthdesk-be/internal/config"
	"github.com/themobileprof/healthdesk-be/internal/knowledge"
	"github.com/themobileprof/healthdesk-be/internal/symptoms"
)

// patientFlags are shared by the offline triage commands
type patientFlags struct {
	symptoms []string
	age      int
	sex      string
}

func (f *patientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.symptoms, "symptom", "s", nil, "symptom (repeatable)")
	cmd.Flags().IntVar(&f.age, "age", -1, "patient age in years")
	cmd.Flags().StringVar(&f.sex, "sex", "", "patient sex (M or F)")
}

func (f *patientFlags) ageRef() *int {
	if f.age < 0 {
		return nil
	}
	age := f.age
	return &age
}

func (f *patientFlags) parsedSex() (knowledge.Sex, error) {
	if f.sex == "" {
		return knowledge.SexUnknown, nil
	}
	sex := knowledge.ParseSex(f.sex)
	if sex == knowledge.SexUnknown {
		return sex, fmt.Errorf("invalid --sex %q: use M or F", f.sex)
	}
	return sex, nil
}

func analyzeCmd() *cobra.Command {
	var (
		flags       patientFlags
		description string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze symptoms offline and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			sex, err := flags.parsedSex()
			if err != nil {
				return err
			}
			kb, err := knowledgeFromEnv()
			if err != nil {
				return err
			}

			list := knowledge.NormalizeAll(flags.symptoms)
			if description != "" {
				for _, s := range symptoms.NewExtractor(kb).Extract(description).Symptoms {
					if !contains(list, s) {
						list = append(list, s)
					}
				}
			}
			if len(list) == 0 {
				return fmt.Errorf("at least one --symptom or a --description with a known symptom is required")
			}

			analyzer := symptoms.NewAnalyzer(kb)
			return printJSON(cmd.OutOrStdout(), analyzer.AnalyzeSymptoms(symptoms.Request{
				Symptoms: list,
				Age:      flags.ageRef(),
				Sex:      sex,
			}))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-text description to extract symptoms from")
	return cmd
}

func emergencyCmd() *cobra.Command {
	var (
		flags    patientFlags
		location string
	)

	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Check symptoms for emergency signs and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			sex, err := flags.parsedSex()
			if err != nil {
				return err
			}
			if len(knowledge.NormalizeAll(flags.symptoms)) == 0 {
				return fmt.Errorf("at least one --symptom is required")
			}
			kb, err := knowledgeFromEnv()
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), symptoms.NewAnalyzer(kb).CheckEmergency(symptoms.EmergencyRequest{
				Symptoms: flags.symptoms,
				Age:      flags.ageRef(),
				Sex:      sex,
				Location: location,
			}))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&location, "location", "", "where the patient is")
	return cmd
}

func kbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect knowledge-base tables",
	}

	var file string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active tables as YAML (built-in defaults unless KNOWLEDGE_FILE is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tables, err := loadTables(cfg.KnowledgeFile)
			if err != nil {
				return err
			}
			data, err := knowledge.Export(tables)
			if err != nil {
				return err
			}
			if file == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(file, data, 0o644)
		},
	}
	exportCmd.Flags().StringVarP(&file, "file", "f", "", "write to this file instead of stdout")
	cmd.AddCommand(exportCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Load and validate a YAML table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := knowledge.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d symptoms, %d diseases, %d interactions, %d metrics)\n",
				args[0], len(kb.Symptoms()), len(kb.Diseases()), kb.InteractionCount(), len(kb.Metrics()))
			return nil
		},
	})

	return cmd
}

func knowledgeFromEnv() (*knowledge.Static, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return loadKnowledge(cfg.KnowledgeFile)
}

func loadKnowledge(path string) (*knowledge.Static, error) {
	if path == "" {
		return knowledge.NewDefault(), nil
	}
	return knowledge.LoadFile(path)
}

func loadTables(path string) (knowledge.Tables, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return knowledge.Tables{}, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	return knowledge.Parse(data)
}

func knowledgeSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
