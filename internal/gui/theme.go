package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ステータス表示用のテーマ名
const (
	ColorNameStatus fyne.ThemeColorName = "tspressStatus"
	SizeNameStatus  fyne.ThemeSizeName  = "tspressStatus"
)

// CalibrationTheme はキャリブレーション画面用のテーマ
// 黒い格子が見えるよう常にライトテーマを使う
type CalibrationTheme struct {
	fyne.Theme
}

// NewCalibrationTheme は新しいテーマを返す
func NewCalibrationTheme() *CalibrationTheme {
	return &CalibrationTheme{
		Theme: theme.DefaultTheme(),
	}
}

// Color は指定されたテーマ名に対応する色を返します
func (m *CalibrationTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNameStatus:
		return color.NRGBA{R: 0, G: 128, B: 0, A: 255} // 緑
	case theme.ColorNameBackground:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255} // 白
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255} // 黒
	case theme.ColorNameButton:
		return color.NRGBA{R: 230, G: 230, B: 230, A: 255} // 薄いグレー
	default:
		return m.Theme.Color(name, theme.VariantLight)
	}
}

// Size はUI要素のサイズを返します
func (m *CalibrationTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case SizeNameStatus:
		return 20
	default:
		return m.Theme.Size(name)
	}
}
