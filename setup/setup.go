package setup

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Samandrakov/cloudapi/stt"
)

func RunSetup() {
	log.Info("Starting cloudapi setup...")

	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		endpoint = stt.DefaultEndpoint
	}
	var apiKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your SpeechKit API key").
				Value(&apiKey),
			huh.NewInput().
				Title("Recognizer endpoint").
				Value(&endpoint),
		),
	)

	err := form.Run()
	if err != nil {
		log.Fatal("Error during setup", "error", err)
	}

	viper.Set("api_key", apiKey)
	viper.Set("endpoint", endpoint)

	err = viper.WriteConfig()
	if err != nil {
		// First run: no config file exists yet.
		err = viper.SafeWriteConfig()
	}
	if err != nil {
		log.Fatal("Error saving configuration", "error", err)
	}

	log.Info("Setup completed successfully!")
}
