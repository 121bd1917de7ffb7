package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/dappaudit/pkg/ai"
	"github.com/user/dappaudit/pkg/config"
)

var providerNames = []string{"gemini", "openai", "anthropic"}

func knownProvider(name string) bool {
	for _, p := range providerNames {
		if p == name {
			return true
		}
	}
	return false
}

func readLine(scanner *bufio.Scanner) string {
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

// chooseProvider resolves a numeric or named provider choice. Returns
// "" when the input matches nothing.
func chooseProvider(scanner *bufio.Scanner) string {
	fmt.Println("Choose the provider that writes your audit reports:")
	for i, p := range providerNames {
		fmt.Printf("%d. %s\n", i+1, p)
	}
	fmt.Print("Enter number or name > ")
	choice := strings.ToLower(readLine(scanner))
	if idx, err := strconv.Atoi(choice); err == nil && idx >= 1 && idx <= len(providerNames) {
		return providerNames[idx-1]
	}
	if knownProvider(choice) {
		return choice
	}
	return ""
}

// chooseModel picks a model from the fetched list. Providers can
// legitimately return an empty list after filtering; fall back to
// manual entry instead of indexing into nothing.
func chooseModel(scanner *bufio.Scanner, models []string) string {
	if len(models) == 0 {
		fmt.Println("The provider returned no usable models.")
		fmt.Print("Enter a model name manually > ")
		return readLine(scanner)
	}
	for i, m := range models {
		fmt.Printf("%d. %s\n", i+1, m)
	}
	fmt.Print("Select model (number) > ")
	idx, err := strconv.Atoi(readLine(scanner))
	if err != nil || idx < 1 || idx > len(models) {
		fmt.Println("Invalid selection. Using the first model.")
		return models[0]
	}
	return models[idx-1]
}

// chooseAnswersPath records the default questionnaire file the score
// and audit commands read when no --answers flag is given.
func chooseAnswersPath(scanner *bufio.Scanner) string {
	fmt.Printf("Default answers file [%s] > ", config.DefaultAnswersPath)
	if path := readLine(scanner); path != "" {
		return path
	}
	return config.DefaultAnswersPath
}

// chooseDeterministic asks whether audit should score from the
// questionnaire baseline by default, keeping the AI text as narrative.
func chooseDeterministic(scanner *bufio.Scanner) bool {
	fmt.Print("Score deterministically from answers by default? [y/N] > ")
	answer := strings.ToLower(readLine(scanner))
	return answer == "y" || answer == "yes"
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Println("dappaudit setup")
		fmt.Println("---------------")

		provider := chooseProvider(scanner)
		if provider == "" {
			fmt.Println("Invalid choice. Aborting.")
			return
		}

		fmt.Printf("\nEnter the API key for %s\n> ", provider)
		apiKey := readLine(scanner)
		if apiKey == "" {
			fmt.Println("API key cannot be empty.")
			return
		}

		fmt.Println("\nValidating key and fetching available models...")
		ctx := context.Background()
		client, err := ai.NewProvider(ctx, provider, apiKey, "")
		if err != nil {
			fmt.Printf("Error initializing provider: %v\n", err)
			return
		}

		var model string
		models, err := client.ListModels(ctx)
		if err != nil {
			fmt.Printf("Warning: could not fetch models: %v\n", err)
			fmt.Print("Enter a model name manually > ")
			model = readLine(scanner)
		} else {
			fmt.Printf("Retrieved %d models.\n", len(models))
			model = chooseModel(scanner, models)
		}

		fmt.Println()
		answersPath := chooseAnswersPath(scanner)
		deterministic := chooseDeterministic(scanner)

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		cfg.SelectedProvider = provider
		cfg.SelectedModel = model
		cfg.SetAPIKey(provider, apiKey)
		cfg.AnswersPath = answersPath
		cfg.Deterministic = deterministic

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}

		fmt.Println("---------------")
		fmt.Println("Setup complete.")
		fmt.Printf("Provider: %s\n", provider)
		fmt.Printf("Model:    %s\n", model)
		fmt.Printf("Answers:  %s\n", answersPath)
		fmt.Println("Run 'dappaudit audit' to generate your first report.")
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
