package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/char5742/tspress/internal/calib"
)

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Window      WindowConfig      `toml:"window"`
	Calibration CalibrationConfig `toml:"calibration"`
	Touch       TouchConfig       `toml:"touch"`
}

// WindowConfig はウィンドウの設定
type WindowConfig struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Fullscreen bool `toml:"fullscreen"`
	Borderless bool `toml:"borderless"`
}

// CalibrationConfig はキャリブレーション表示の寸法
type CalibrationConfig struct {
	Origin             int `toml:"origin"`
	Step               int `toml:"step"`
	Margin             int `toml:"margin"`
	TargetArm          int `toml:"target_arm"`
	MarkerArm          int `toml:"marker_arm"`
	MinWidthForButtons int `toml:"min_width_for_buttons"`
}

// TouchConfig はevdevタッチデバイスの設定
type TouchConfig struct {
	Enabled bool   `toml:"enabled"`
	Device  string `toml:"device"` // デバイス名またはパス。空なら自動選択
	Grab    bool   `toml:"grab"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	g := calib.DefaultGeometry()
	return &Config{
		Window: WindowConfig{
			Width:      800,
			Height:     480,
			Fullscreen: false,
			Borderless: true,
		},
		Calibration: CalibrationConfig{
			Origin:             g.Origin,
			Step:               g.Step,
			Margin:             g.Margin,
			TargetArm:          g.TargetArm,
			MarkerArm:          g.MarkerArm,
			MinWidthForButtons: 400,
		},
		Touch: TouchConfig{
			Enabled: true,
			Device:  "",
			Grab:    false,
		},
	}
}

// Geometry は描画用の寸法を返す
func (c *Config) Geometry() calib.Geometry {
	return calib.Geometry{
		Origin:    c.Calibration.Origin,
		Step:      c.Calibration.Step,
		Margin:    c.Calibration.Margin,
		TargetArm: c.Calibration.TargetArm,
		MarkerArm: c.Calibration.MarkerArm,
	}
}

// ShowButtons は番号ボタンを表示する幅かどうかを返す
func (c *Config) ShowButtons() bool {
	return c.Window.Width > c.Calibration.MinWidthForButtons
}

// GetDefaultConfigDir はデフォルトの設定ディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tspress"), nil
}

// LoadConfig は設定ファイルから設定を読み込む
// ファイルがない場合はデフォルト設定を返す（ファイルは作成しない）
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	// ファイルにない項目はデフォルト値のまま
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}
