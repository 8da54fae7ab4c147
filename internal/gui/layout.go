package gui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// 番号ボタンの数
const buttonCount = 8

var (
	buttonSize = fyne.NewSize(50, 40)
	exitSize   = fyne.NewSize(72, 40)
)

// fixedSize はオブジェクトを指定サイズで配置する
func fixedSize(size fyne.Size, obj fyne.CanvasObject) fyne.CanvasObject {
	return container.New(layout.NewGridWrapLayout(size), obj)
}

// spread は両端と間に余白を入れて横に並べる
func spread(objs ...fyne.CanvasObject) *fyne.Container {
	row := container.NewHBox()
	for i, obj := range objs {
		if i > 0 {
			row.Add(layout.NewSpacer())
		}
		row.Add(obj)
	}
	return row
}

func verticalGap(height float32) fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(0, height))
	return r
}

// makeButtons は1..8の番号ボタンを作成する
func makeButtons(onPressed func(id int)) []*widget.Button {
	buttons := make([]*widget.Button, buttonCount)
	for i := range buttons {
		id := i + 1
		buttons[i] = widget.NewButton(strconv.Itoa(id), func() {
			onPressed(id)
		})
	}
	return buttons
}

// makeControls はボタンとステータスを配置する
// 幅が十分あれば番号ボタンを3/2/3で並べ、なければ終了ボタンだけを中央に置く
func makeControls(buttons []*widget.Button, exit *widget.Button, status fyne.CanvasObject) fyne.CanvasObject {
	exitObj := fixedSize(exitSize, exit)

	if len(buttons) < buttonCount {
		return container.NewVBox(
			layout.NewSpacer(),
			container.NewHBox(layout.NewSpacer(), exitObj, layout.NewSpacer()),
			layout.NewSpacer(),
		)
	}

	b := make([]fyne.CanvasObject, len(buttons))
	for i, btn := range buttons {
		b[i] = fixedSize(buttonSize, btn)
	}

	return container.NewVBox(
		spread(b[0], b[1], b[2]),
		layout.NewSpacer(),
		spread(b[3], exitObj, b[4]),
		verticalGap(8),
		container.NewHBox(layout.NewSpacer(), status, layout.NewSpacer()),
		layout.NewSpacer(),
		spread(b[5], b[6], b[7]),
	)
}
