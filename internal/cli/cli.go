// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkorolev/repodump/internal/collect"
	"github.com/dkorolev/repodump/internal/config"
	"github.com/dkorolev/repodump/internal/dump"
	"github.com/dkorolev/repodump/internal/filter"
	"github.com/dkorolev/repodump/internal/services/clipboard"
	"github.com/dkorolev/repodump/internal/tokenizer"
	"github.com/dkorolev/repodump/internal/utils"
)

const (
	rootUse              = "repodump"
	rootShortDescription = "repodump concatenates a project's source files into one document"
	rootLongDescription  = `repodump walks a project directory tree, selects source and configuration
files by fixed name and extension rules, and concatenates their contents into
a single text document with path-delimited headers, ready to paste into an
LLM context window.

Run without arguments the tool anchors itself on its own location: the parent
of the directory holding the binary is scanned, and the document is written
beside the binary.`
	rootUsageExample = `  # Dump the project the binary lives in
  repodump

  # Dump an explicit tree to an explicit file
  repodump --root ~/src/service --output /tmp/service_dump.txt

  # Dump, count tokens, and copy the document to the clipboard
  repodump --tokens --copy`

	rootFlagName = "root"
	rootFlagDescription = "root directory to scan (default: parent of the tool's directory)"
	outputFlagName = "output"
	outputFlagDescription = "output document path (default: " + config.DefaultOutputFileName + " beside the tool)"
	configFlagName = "config"
	configFlagDescription = "path to a " + config.ConfigFileName + " overlay file"
	copyFlagName = "copy"
	copyFlagDescription = "copy the generated document to the system clipboard"
	tokensFlagName = "tokens"
	tokensFlagDescription = "count tokens of the generated document"
	modelFlagName = "model"
	modelFlagDescription = "tokenizer model to use for token counting"
	versionFlagName = "version"
	versionFlagDescription = "display application version"
	versionTemplate = "repodump version: %s\n"

	scanningMessageFormat = "Scanning %s"
	writingMessageFormat = "Writing %s"
	collectedMessageFormat = "Collected %d files"
	tokenCountMessageFormat = "Counted %d tokens (%s)"
	tokenSkippedMessage = "Token counting skipped: document is not valid text"
	clipboardCopiedMessage = "Copied document to clipboard"
	warningTokenCountFormat = "Warning: failed to count tokens: %v\n"
	warningClipboardFormat = "Warning: failed to copy to clipboard: %v\n"

	toolDirectoryErrorFormat = "unable to determine tool directory: %w"
	loadConfigurationFormat = "loading configuration: %w"
	readDocumentErrorFormat = "read generated document %s: %w"
	collectFilePathsFormat = "collecting files under %s: %w"
	writeDocumentErrorFormat = "writing document: %w"
)

// runOptions carries the resolved flag values of one invocation.
type runOptions struct {
	rootPath        string
	outputPath      string
	configFilePath  string
	copyToClipboard bool
	countTokens     bool
	tokenizerModel  string
}

// Execute runs the repodump application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command. The command takes no
// positional arguments; every flag supplements a compiled-in default, so a
// bare invocation runs the full fixed pipeline.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var options runOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runDump(logger, options)
		},
	}

	rootCommand.Flags().StringVar(&options.rootPath, rootFlagName, "", rootFlagDescription)
	rootCommand.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
	rootCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, "", modelFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// runDump executes the collect-then-write pipeline once.
func runDump(logger *zap.Logger, options runOptions) error {
	toolDirectory, toolDirectoryError := resolveToolDirectory()
	if toolDirectoryError != nil {
		return fmt.Errorf(toolDirectoryErrorFormat, toolDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: toolDirectory,
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return fmt.Errorf(loadConfigurationFormat, configurationError)
	}

	rootPath := options.rootPath
	if rootPath == "" {
		rootPath = filepath.Dir(toolDirectory)
	}
	outputPath := options.outputPath
	if outputPath == "" {
		outputPath = filepath.Join(toolDirectory, applicationConfiguration.Output.FileName)
	}

	logger.Info(fmt.Sprintf(scanningMessageFormat, rootPath))
	logger.Info(fmt.Sprintf(writingMessageFormat, outputPath))

	pathFilter := filter.NewPathFilter(applicationConfiguration.Filter)
	collector := collect.NewCollector(pathFilter)
	relativePaths, collectError := collector.CollectFilePaths(rootPath)
	if collectError != nil {
		return fmt.Errorf(collectFilePathsFormat, rootPath, collectError)
	}
	logger.Info(fmt.Sprintf(collectedMessageFormat, len(relativePaths)))

	documentWriter := dump.NewWriter(rootPath, logger)
	if _, writeError := documentWriter.WriteDocument(outputPath, relativePaths); writeError != nil {
		return fmt.Errorf(writeDocumentErrorFormat, writeError)
	}

	countTokens := options.countTokens
	if !countTokens && applicationConfiguration.Tokens.Enabled != nil {
		countTokens = *applicationConfiguration.Tokens.Enabled
	}
	tokenizerModel := options.tokenizerModel
	if tokenizerModel == "" {
		tokenizerModel = applicationConfiguration.Tokens.Model
	}

	if countTokens || options.copyToClipboard {
		documentBytes, readError := os.ReadFile(outputPath)
		if readError != nil {
			return fmt.Errorf(readDocumentErrorFormat, outputPath, readError)
		}
		if countTokens {
			reportTokenCount(logger, documentBytes, tokenizerModel)
		}
		if options.copyToClipboard {
			if copyError := clipboard.NewService().Copy(string(documentBytes)); copyError != nil {
				fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
			} else {
				logger.Info(clipboardCopiedMessage)
			}
		}
	}

	return nil
}

// reportTokenCount counts the document's tokens and logs the result. Token
// counting is informational; failures warn and never fail the run.
func reportTokenCount(logger *zap.Logger, documentBytes []byte, model string) {
	counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, counterError)
		return
	}
	countResult, countError := tokenizer.CountBytes(counter, documentBytes)
	if countError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, countError)
		return
	}
	if !countResult.Counted {
		logger.Info(tokenSkippedMessage)
		return
	}
	logger.Info(fmt.Sprintf(tokenCountMessageFormat, countResult.Tokens, resolvedModel))
}

// resolveToolDirectory locates the directory holding the running binary. When
// the executable path cannot be resolved (for example under go run), the
// working directory stands in so the tool remains usable.
func resolveToolDirectory() (string, error) {
	executablePath, executableError := os.Executable()
	if executableError == nil {
		if resolvedPath, symlinkError := filepath.EvalSymlinks(executablePath); symlinkError == nil {
			return filepath.Dir(resolvedPath), nil
		}
		return filepath.Dir(executablePath), nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", workingDirectoryError
	}
	return workingDirectory, nil
}
