package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ConfigName is the base name of the optional settings file
// (vocabshooter.yaml, vocabshooter.toml, ...).
const ConfigName = "vocabshooter"

// ConfigDirEnv names the directory searched for the settings file when Load
// is given none.
const ConfigDirEnv = "VOCABSHOOTER_CONFIG_DIR"

// Settings holds the validated runtime settings.
type Settings struct {
	LogLevel string         `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string         `mapstructure:"log_file"`
	DeckPath string         `mapstructure:"deck_path"`
	Audio    AudioSettings  `mapstructure:"audio"`
	Speech   SpeechSettings `mapstructure:"speech"`
	SSH      SSHSettings    `mapstructure:"ssh"`
	Web      WebSettings    `mapstructure:"web"`
}

// AudioSettings configures the hit tone synthesizer.
type AudioSettings struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume" validate:"min=0,max=1"`
	SampleRate int     `mapstructure:"sample_rate" validate:"min=8000,max=192000"`
}

// SpeechSettings configures the text-to-speech engine.
type SpeechSettings struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate" validate:"gt=0,max=2"`
	Backend string  `mapstructure:"backend" validate:"omitempty,oneof=espeak-ng espeak say"`
}

// SSHSettings configures cmd/ssh.
type SSHSettings struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        string `mapstructure:"port" validate:"required,numeric"`
	HostKeyPath string `mapstructure:"host_key"`
}

// WebSettings configures cmd/web.
type WebSettings struct {
	Host        string `mapstructure:"host" validate:"required"`
	Port        string `mapstructure:"port" validate:"required,numeric"`
	DisplayHost string `mapstructure:"display_host"`
}

var validate = validator.New()

// envBindings keeps the environment names the binaries have always used.
var envBindings = map[string]string{
	"log_level":        "LOG_LEVEL",
	"log_file":         "LOG_FILE",
	"deck_path":        "DECK_PATH",
	"audio.enabled":    "AUDIO_ENABLED",
	"audio.volume":     "AUDIO_VOLUME",
	"speech.enabled":   "SPEECH_ENABLED",
	"speech.backend":   "SPEECH_BACKEND",
	"ssh.host":         "SSH_HOST",
	"ssh.port":         "SSH_PORT",
	"ssh.host_key":     "SSH_HOST_KEY",
	"web.host":         "WEB_HOST",
	"web.port":         "WEB_PORT",
	"web.display_host": "SSH_DISPLAY_HOST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("deck_path", "")
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.8)
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.rate", 0.9)
	v.SetDefault("speech.backend", "")
	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.host_key", "/app/keys/host_key")
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.display_host", "your-server.com")
}

// Load reads settings from defaults, an optional settings file and the
// environment, in increasing priority. dirs are searched for the settings
// file; when empty $VOCABSHOOTER_CONFIG_DIR or the working directory is
// used. A missing file is not an error.
func Load(dirs ...string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VOCABSHOOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName(ConfigName)
	if len(dirs) == 0 {
		dirs = []string{GetEnv(ConfigDirEnv, ".")}
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks struct tags and flattens the validator errors into one message.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("Field: %s, Tag: %s, Param: %s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
