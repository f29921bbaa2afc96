package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/tkaneko/qvox/pkg/analysis"
	"github.com/tkaneko/qvox/pkg/render"
	"github.com/tkaneko/qvox/pkg/volume"
)

type App struct {
	window    fyne.Window
	vol       *volume.Volume
	viewer    *render.VolumeViewer
	infoLabel *widget.Label
}

func main() {
	a := app.New()
	w := a.NewWindow("qvox - Volume Inspector")

	appInstance := &App{
		window: w,
	}

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to qvox")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Volume File' to load a MetaImage (.mhd) volume")

	openButton := widget.NewButton("Open Volume File", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	vol, err := volume.Parse(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load volume file: %w", err), a.window)
		return
	}

	a.vol = vol
	a.setupMainUI()
}

func (a *App) setupMainUI() {
	a.infoLabel = widget.NewLabel("")
	a.viewer = render.NewVolumeViewer(a.vol)

	stats := analysis.Analyze(a.vol)
	a.infoLabel.SetText(fmt.Sprintf(
		"Volume: %s\nGrid: %d x %d x %d\nVoxels: %d\n\nIntensity:\n  Range: %s\n  Mean: %.2f\n  StdDev: %.2f\n\nSize:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		a.vol.Name,
		a.vol.Geom.Dims[0], a.vol.Geom.Dims[1], a.vol.Geom.Dims[2],
		a.vol.Geom.VoxelCount(),
		analysis.FormatRange(stats.Min, stats.Max),
		stats.Mean,
		stats.StdDev,
		stats.Dimensions.X,
		stats.Dimensions.Y,
		stats.Dimensions.Z,
	))

	openButton := widget.NewButton("Open File", func() {
		a.showFileDialog()
	})

	frontButton := widget.NewButton("Front", func() {
		a.viewer.Camera().FrontView()
		a.viewer.Redraw()
	})
	topButton := widget.NewButton("Top", func() {
		a.viewer.Camera().TopView()
		a.viewer.Redraw()
	})
	sideButton := widget.NewButton("Side", func() {
		a.viewer.Camera().SideView()
		a.viewer.Redraw()
	})

	// Threshold slider over the volume's value range; skips background
	// air in the rendering
	lo, hi := a.vol.ValueRange()
	histogram := analysis.ComputeHistogram(a.vol, 256)
	thresholdSlider := widget.NewSlider(float64(lo), float64(hi))
	thresholdSlider.SetValue(float64(histogram.Percentile(0.25)))
	thresholdSlider.OnChanged = func(value float64) {
		a.viewer.SetThreshold(int16(value))
	}
	a.viewer.SetThreshold(int16(thresholdSlider.Value))

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Use the slider to hide background voxels\n" +
			"• Use the qvox CLI viewer for region clipping",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Volume Information:"),
		widget.NewSeparator(),
		a.infoLabel,
		widget.NewSeparator(),
		widget.NewLabel("View:"),
		container.NewHBox(frontButton, topButton, sideButton),
		widget.NewSeparator(),
		widget.NewLabel("Display Threshold:"),
		thresholdSlider,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.viewer,   // center
	)

	a.window.SetContent(content)
}
