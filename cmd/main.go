package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/char5742/tspress/internal/config"
	"github.com/char5742/tspress/internal/gui"
	"github.com/char5742/tspress/internal/touch"
)

func main() {
	// コマンドライン引数の解析
	configPath := flag.String("config", "", "設定ファイルのパス (指定しない場合はデフォルトパスを使用)")
	device := flag.String("device", "", "タッチデバイスの名前またはパス (設定ファイルより優先)")
	grab := flag.Bool("grab", false, "タッチデバイスを専有します")
	noTouch := flag.Bool("no-touch", false, "evdevタッチ入力を使用しません")
	writeConfig := flag.Bool("write-config", false, "現在の設定を設定ファイルに書き出して終了します")
	listDevices := flag.Bool("list-devices", false, "タッチデバイスの一覧を表示して終了します")
	flag.Parse()

	if *listDevices {
		runListDevices()
		return
	}

	// 設定ファイルパスの決定
	cfgPath := *configPath
	if cfgPath == "" {
		configDir, err := config.GetDefaultConfigDir()
		if err == nil {
			cfgPath = filepath.Join(configDir, "config.toml")
		}
	}

	// 設定ファイルの読み込み
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Printf("設定ファイルの読み込みに失敗しました: %v (デフォルト設定を使用します)", err)
		} else {
			cfg = loaded
		}
	}

	// フラグは設定ファイルより優先
	if *device != "" {
		cfg.Touch.Device = *device
	}
	if *grab {
		cfg.Touch.Grab = true
	}
	if *noTouch {
		cfg.Touch.Enabled = false
	}

	if *writeConfig {
		if cfgPath == "" {
			log.Fatal("設定ファイルのパスを決定できません。-configで指定してください")
		}
		if err := config.SaveConfig(cfgPath, cfg); err != nil {
			log.Fatalf("設定の保存に失敗しました: %v", err)
		}
		fmt.Printf("設定を保存しました: %s\n", cfgPath)
		return
	}

	gui.RunGUI(cfg)
}

// タッチデバイスの一覧を表示する
func runListDevices() {
	devices, err := touch.ScanDevices()
	if err != nil {
		log.Fatalf("デバイス一覧の取得に失敗しました: %v", err)
	}
	if len(devices) == 0 {
		fmt.Println("タッチデバイスが見つかりませんでした")
		return
	}
	for _, dev := range devices {
		fmt.Printf("%s\t%s\t%s\n", dev.Path, dev.Type, dev.Name)
	}
}
