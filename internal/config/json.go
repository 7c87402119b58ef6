package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations accepted as strings like "15m" or "30s".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string `json:"token_sign_key"`
		TokenIssuer   string `json:"token_issuer"`
		SecretWrapKey string `json:"secret_wrap_key"`
	} `json:"app,omitempty"`

	Session struct {
		WarningThreshold      Duration `json:"warning_threshold"`
		LockThreshold         Duration `json:"lock_threshold"`
		TickInterval          Duration `json:"tick_interval"`
		MaxCaptureDuration    Duration `json:"max_capture_duration"`
		Debug                 bool     `json:"debug"`
		DebugWarningThreshold Duration `json:"debug_warning_threshold"`
		DebugLockThreshold    Duration `json:"debug_lock_threshold"`
	} `json:"session,omitempty"`

	Vault struct {
		KDFIterations int      `json:"kdf_iterations"`
		RecordTTL     Duration `json:"record_ttl"`
	} `json:"vault,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			Backend string `json:"backend"`
			Path    string `json:"path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		CaptureTokenTTL Duration `json:"capture_token_ttl"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			SecretWrapKey: jsonCfg.App.SecretWrapKey,
		},
		Session: Session{
			WarningThreshold:      time.Duration(jsonCfg.Session.WarningThreshold),
			LockThreshold:         time.Duration(jsonCfg.Session.LockThreshold),
			TickInterval:          time.Duration(jsonCfg.Session.TickInterval),
			MaxCaptureDuration:    time.Duration(jsonCfg.Session.MaxCaptureDuration),
			Debug:                 jsonCfg.Session.Debug,
			DebugWarningThreshold: time.Duration(jsonCfg.Session.DebugWarningThreshold),
			DebugLockThreshold:    time.Duration(jsonCfg.Session.DebugLockThreshold),
		},
		Vault: Vault{
			KDFIterations: jsonCfg.Vault.KDFIterations,
			RecordTTL:     time.Duration(jsonCfg.Vault.RecordTTL),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				Backend: jsonCfg.Storage.Local.Backend,
				Path:    jsonCfg.Storage.Local.Path,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			CaptureTokenTTL: time.Duration(jsonCfg.Server.CaptureTokenTTL),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
