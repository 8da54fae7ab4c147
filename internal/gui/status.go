package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// statusView は直近のイベントを表示するラベル（緑・大きめの文字）
type statusView struct {
	text    *widget.RichText
	segment *widget.TextSegment
}

func newStatusView(text string) *statusView {
	seg := &widget.TextSegment{
		Text: text,
		Style: widget.RichTextStyle{
			Alignment: fyne.TextAlignCenter,
			ColorName: ColorNameStatus,
			SizeName:  SizeNameStatus,
		},
	}
	return &statusView{
		text:    widget.NewRichText(seg),
		segment: seg,
	}
}

func (s *statusView) SetText(text string) {
	if s.segment.Text == text {
		return
	}
	s.segment.Text = text
	s.text.Refresh()
}

func (s *statusView) Text() string {
	return s.segment.Text
}
