package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Samandrakov/cloudapi/setup"
	"github.com/Samandrakov/cloudapi/stt"
)

var logger *log.Logger

func init() {
	cobra.OnInitialize(initConfig)

	transcribeCmd.Flags().
		Bool("keep-partials", false, "Retain intermediate partial results")
	transcribeCmd.Flags().
		Bool("full-data", false, "Recognize after the complete audio arrives instead of in real time")
	transcribeCmd.Flags().
		Bool("no-normalization", false, "Disable server-side text normalization")
	transcribeCmd.Flags().
		Bool("profanity-filter", true, "Mask profanity in recognized text")
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(setupCmd)

	// Add persistent flags
	rootCmd.PersistentFlags().String("api-key", "", "SpeechKit API key")
	rootCmd.PersistentFlags().
		String("endpoint", stt.DefaultEndpoint, "Recognizer endpoint")
	rootCmd.PersistentFlags().Int("sample-rate", 8000, "Audio sample rate in Hz")
	rootCmd.PersistentFlags().Int("channels", 1, "Audio channel count")
	rootCmd.PersistentFlags().
		Int("chunk-size", 4000, "Audio frame size in bytes")
	rootCmd.PersistentFlags().
		StringSlice("language", []string{"ru-RU"}, "Recognition language whitelist")

	// Bind flags to viper
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag(
		"sample_rate",
		rootCmd.PersistentFlags().Lookup("sample-rate"),
	)
	viper.BindPFlag("channels", rootCmd.PersistentFlags().Lookup("channels"))
	viper.BindPFlag(
		"chunk_size",
		rootCmd.PersistentFlags().Lookup("chunk-size"),
	)
	viper.BindPFlag("languages", rootCmd.PersistentFlags().Lookup("language"))
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	logger = log.New(os.Stdout)
}

var rootCmd = &cobra.Command{
	Use:   "cloudapi",
	Short: "cloudapi is a SpeechKit streaming transcription client",
	Long:  `cloudapi uploads audio files to the Yandex SpeechKit v3 recognizer over a duplex gRPC stream and prints the reconciled transcript.`,
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a raw PCM audio file",
	Long:  `Transcribe streams a LINEAR16 PCM audio file to the recognizer and prints the committed segments and the full transcript.`,
	Args:  cobra.ExactArgs(1),
	Run:   runTranscribe,
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively configure the API key and endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		setup.RunSetup()
	},
}

func runTranscribe(cmd *cobra.Command, args []string) {
	mainLogger, sttLogger := createLoggers()

	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		mainLogger.Fatal("missing API_KEY or --api-key=")
	}

	keepPartials, _ := cmd.Flags().GetBool("keep-partials")
	fullData, _ := cmd.Flags().GetBool("full-data")
	noNormalization, _ := cmd.Flags().GetBool("no-normalization")
	profanityFilter, _ := cmd.Flags().GetBool("profanity-filter")

	mode := stt.RealTime
	if fullData {
		mode = stt.FullData
	}

	client, err := stt.NewClient(stt.Config{
		Endpoint:        viper.GetString("endpoint"),
		APIKey:          apiKey,
		SampleRate:      viper.GetInt("sample_rate"),
		Channels:        viper.GetInt("channels"),
		ChunkSize:       viper.GetInt("chunk_size"),
		Languages:       viper.GetStringSlice("languages"),
		Normalization:   !noNormalization,
		ProfanityFilter: profanityFilter,
		Mode:            mode,
	}, sttLogger)
	if err != nil {
		mainLogger.Fatal("create recognizer client", "error", err.Error())
	}

	audioFile, err := os.Open(args[0])
	if err != nil {
		mainLogger.Fatal("open audio file", "error", err.Error())
	}
	defer audioFile.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	mainLogger.Info("transcribing", "file", args[0])

	fullText, segments, err := client.Transcribe(ctx, audioFile, keepPartials)
	if err != nil {
		mainLogger.Fatal("transcribe", "error", err.Error())
	}

	if len(segments) == 0 {
		fmt.Println("No speech recognized.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Segment"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	for i, segment := range segments {
		table.Append([]string{fmt.Sprintf("%d", i+1), segment})
	}

	table.Render()

	fmt.Println()
	fmt.Println(fullText)
}

func createLoggers() (mainLogger, sttLogger *log.Logger) {
	logLevel := log.DebugLevel

	logger.SetLevel(logLevel)
	logger.SetReportCaller(true)
	logger.SetCallerFormatter(
		func(file string, line int, funcName string) string {
			path, err := filepath.Rel(".", file)
			if err != nil {
				path = file
			}
			return fmt.Sprintf("%s:%d", path, line)
		},
	)

	styles := log.DefaultStyles()
	styles.Prefix = styles.Prefix.MarginTop(1).
		Bold(false).Transform(func(s string) string {
		return strings.TrimSuffix(s, ":")
	})
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].
		MaxWidth(6).
		MarginRight(1).
		Bold(false)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].
		MaxWidth(6).
		MarginRight(1).
		Bold(false)
	styles.Message = styles.Message.Bold(true).Width(24)
	styles.Key = styles.Key.MarginLeft(1).
		Bold(false).
		Foreground(lipgloss.Color("#ff8800"))

	logger.SetStyles(styles)

	mainLogger = logger.With().WithPrefix("main")
	sttLogger = logger.With().WithPrefix("hear")

	return
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
