// Package main is the entry point for the dx7syx CLI
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/dx7syx/pkg/api"
	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/converter/devices"
	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/james-see/dx7syx/pkg/mcpserver"
	"github.com/james-see/dx7syx/pkg/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile   string
	outputFormat string
	channelNum   int
	verbose      bool
	slot         int
	serverPort   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dx7syx",
	Short: "Decode, edit and encode Yamaha DX7 SysEx dumps",
	Long: `dx7syx reads and writes Yamaha DX7 single voice and 32 voice cartridge
dumps as .syx, Standard MIDI Files, JSON and YAML.

Examples:
  dx7syx info rom1a.syx
  dx7syx convert rom1a.syx -o rom1a.yaml
  dx7syx extract rom1a.syx --slot 1 -o brass1.syx
  dx7syx bank brass1.syx strings1.syx -o mybank.syx
  dx7syx init --format json
  dx7syx tui
  dx7syx serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		dx7.SetLogger(logger)

		if _, err := dx7.NewChannel(channelNum); err != nil {
			return fmt.Errorf("--channel: %w", err)
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Auto-detect and convert between formats",
	Long:  `Automatically detects input format and converts to the output format based on file extension.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Show the voices in a dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var extractCmd = &cobra.Command{
	Use:   "extract <cartridge.syx>",
	Short: "Extract one voice of a cartridge as a single voice dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var bankCmd = &cobra.Command{
	Use:   "bank <voice.syx>...",
	Short: "Assemble up to 32 single voice dumps into a cartridge",
	Args:  cobra.RangeArgs(1, dx7.VoiceCount),
	RunE:  runBank,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an INIT VOICE dump",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var checksumCmd = &cobra.Command{
	Use:   "checksum <input>",
	Short: "Print the payload checksum of a dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runChecksum,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve read-only inspection tools over MCP stdio",
	RunE:  runMCP,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().IntVarP(&channelNum, "channel", "c", 1, "MIDI channel (1-16) for generated dumps")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Convert command
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	_ = convertCmd.MarkFlagRequired("output")

	// extract command
	extractCmd.Flags().IntVarP(&slot, "slot", "s", 1, "Voice slot (1-32)")
	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .syx file path")

	// bank command
	bankCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .syx file path (required)")
	_ = bankCmd.MarkFlagRequired("output")

	// init command
	initCmd.Flags().StringVarP(&outputFormat, "format", "f", "syx", "Output format (syx, midi, json, yaml)")
	initCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default stdout)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checksumCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

func getChannel() dx7.Channel {
	ch, err := dx7.NewChannel(channelNum)
	if err != nil {
		return dx7.DefaultChannel()
	}
	return ch
}

func newConverter() *converter.Converter {
	return converter.New(devices.NewDX7(getChannel()))
}

func getOutputPath(input, suffix string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}

// writeOutput writes to path, or to stdout when path is empty or "-".
// Binary data is never written to a terminal.
func writeOutput(path string, data []byte, binary bool) error {
	if path != "" && path != "-" {
		return os.WriteFile(path, data, 0644)
	}
	if binary && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write binary data to a terminal, use -o")
	}
	_, err := os.Stdout.Write(data)
	return err
}

func readDocument(conv *converter.Converter, input string) (*converter.Document, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	format := converter.DetectFormat(input)
	if format == converter.FormatUnknown {
		format = converter.DetectFormatFromContent(data)
	}
	slog.Debug("reading dump", "file", input, "format", format, "size", len(data))
	return conv.Decode(data, format)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	conv := newConverter()

	fmt.Printf("Converting %s -> %s\n", input, outputFile)
	if err := conv.ConvertFile(input, outputFile); err != nil {
		return err
	}
	fmt.Println("Conversion complete!")
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(newConverter(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s, channel %d, %d voice(s)\n", args[0], doc.Kind, doc.Channel, len(doc.Voices))
	if doc.Kind == converter.KindVoice {
		fmt.Println(doc.Voices[0].String())
		fmt.Println(doc.Voices[0].Algorithm.Diagram())
		return nil
	}
	for i, v := range doc.Voices {
		fmt.Printf("%2d %-10s ALG %2d\n", i+1, v.Name, v.Algorithm.Value())
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input, fmt.Sprintf("-%02d.syx", slot))

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	result, err := newConverter().ExtractVoice(data, slot)
	if err != nil {
		return err
	}

	if err := writeOutput(output, result, true); err != nil {
		return err
	}

	if output != "-" {
		fmt.Printf("Extracted voice %d of %s -> %s\n", slot, input, output)
	}
	return nil
}

func runBank(cmd *cobra.Command, args []string) error {
	voices := make([][]byte, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		voices = append(voices, data)
	}

	result, err := newConverter().BuildCartridge(voices...)
	if err != nil {
		return err
	}

	if err := writeOutput(outputFile, result, true); err != nil {
		return err
	}

	if outputFile != "-" {
		fmt.Printf("Wrote %d voice(s) to %s\n", len(args), outputFile)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	format := converter.Format(strings.ToLower(outputFormat))
	if format == "mid" {
		format = converter.FormatMIDI
	}

	doc := converter.NewVoiceDocument(getChannel(), dx7.InitVoice())
	result, err := newConverter().Encode(doc, format)
	if err != nil {
		return err
	}

	binary := format == converter.FormatSyx || format == converter.FormatMIDI
	return writeOutput(outputFile, result, binary)
}

func runChecksum(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(newConverter(), args[0])
	if err != nil {
		return err
	}

	var payload []byte
	if doc.Kind == converter.KindVoice {
		payload = doc.Voices[0].Bytes()
	} else {
		c, err := doc.Cartridge()
		if err != nil {
			return err
		}
		payload = c.Bytes()
	}

	fmt.Printf("%s: %s payload of %d bytes, checksum 0x%02X\n", args[0], doc.Kind, len(payload), dx7.Checksum(payload))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(newConverter())
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort, getChannel())
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcpserver.Serve(newConverter(), version)
}
