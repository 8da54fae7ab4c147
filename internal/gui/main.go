package gui

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/char5742/tspress/internal/config"
)

// RunGUI はGUIアプリケーションを起動する
func RunGUI(cfg *config.Config) {
	// evdevの読み取りには通常rootかinputグループの権限が必要
	if cfg.Touch.Enabled && os.Geteuid() != 0 {
		log.Println("root以外で実行しています。タッチデバイスを開けない場合はマウス入力のみ表示します")
	}

	a := NewApp(app.NewWithID("com.github.char5742.tspress"), cfg)
	a.handleSignals()
	a.Run()
}

// handleSignals はSIGINT/SIGTERMでアプリケーションを終了させる
// 終了処理（デバイスの解放など）はRunの後片付けで行う
func (a *App) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go a.watchSignals(sigChan)
}

func (a *App) watchSignals(sigChan <-chan os.Signal) {
	sig, ok := <-sigChan
	if !ok {
		return
	}
	log.Printf("シャットダウンします... (%v)", sig)
	fyne.Do(a.Quit)
}
