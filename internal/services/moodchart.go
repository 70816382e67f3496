package services

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/soulsetjourneys/soulset-backend/internal/logger"
)

// ChartService renders the mood trend as a PNG, the server-side twin of
// the dashboard's export button.
type ChartService interface {
	RenderTrend(summary MoodSummary) (bytes.Buffer, error)
}

type chartService struct {
	log      *logger.Logger
	fontFace font.Face
}

// NewChartService loads an optional TTF from MOODCHART_FONT for axis
// labels; without it the renderer falls back to the built-in face.
func NewChartService(log *logger.Logger) (ChartService, error) {
	serviceLog := log.With("service", "ChartService")

	var face font.Face
	fontPath := os.Getenv("MOODCHART_FONT")
	if strings.TrimSpace(fontPath) != "" {
		serviceLog.Info("Loading chart font", "font", fontPath)
		loaded, err := loadChartFontFace(fontPath, 16)
		if err != nil {
			return nil, fmt.Errorf("could not load chart font: %w", err)
		}
		face = loaded
	}

	return &chartService{
		log:      serviceLog,
		fontFace: face,
	}, nil
}

const (
	chartWidth  = 800
	chartHeight = 400
	chartPad    = 48.0
)

var (
	chartBG     = color.NRGBA{R: 0x12, G: 0x10, B: 0x1C, A: 0xFF}
	chartGrid   = color.NRGBA{R: 0x2E, G: 0x2A, B: 0x40, A: 0xFF}
	chartLine   = color.NRGBA{R: 0xB7, G: 0x8C, B: 0xFF, A: 0xFF}
	chartPoint  = color.NRGBA{R: 0xE9, G: 0xDD, B: 0xFF, A: 0xFF}
	chartLabelC = color.NRGBA{R: 0x9A, G: 0x93, B: 0xB5, A: 0xFF}
)

func (cs *chartService) RenderTrend(summary MoodSummary) (bytes.Buffer, error) {
	var buf bytes.Buffer

	dc := gg.NewContext(chartWidth, chartHeight)
	if cs.fontFace != nil {
		dc.SetFontFace(cs.fontFace)
	}

	dc.SetColor(chartBG)
	dc.DrawRectangle(0, 0, chartWidth, chartHeight)
	dc.Fill()

	plotW := float64(chartWidth) - 2*chartPad
	plotH := float64(chartHeight) - 2*chartPad

	// Horizontal gridline per mood level, 1 at the bottom, 5 at the top.
	for level := 1; level <= 5; level++ {
		y := chartPad + plotH*(1-float64(level-1)/4)
		dc.SetColor(chartGrid)
		dc.SetLineWidth(1)
		dc.DrawLine(chartPad, y, chartPad+plotW, y)
		dc.Stroke()

		dc.SetColor(chartLabelC)
		dc.DrawStringAnchored(fmt.Sprintf("%d", level), chartPad-16, y, 0.5, 0.35)
	}

	if !summary.HasData || len(summary.Points) == 0 {
		dc.SetColor(chartLabelC)
		dc.DrawStringAnchored("no mood data yet", chartWidth/2, chartHeight/2, 0.5, 0.5)
		if err := dc.EncodePNG(&buf); err != nil {
			return buf, fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf, nil
	}

	pts := summary.Points
	xAt := func(i int) float64 {
		if len(pts) == 1 {
			return chartPad + plotW/2
		}
		return chartPad + plotW*float64(i)/float64(len(pts)-1)
	}
	yAt := func(mood int) float64 {
		if mood < 1 {
			mood = 1
		}
		if mood > 5 {
			mood = 5
		}
		return chartPad + plotH*(1-float64(mood-1)/4)
	}

	dc.SetColor(chartLine)
	dc.SetLineWidth(3)
	for i := 1; i < len(pts); i++ {
		dc.DrawLine(xAt(i-1), yAt(pts[i-1].Mood), xAt(i), yAt(pts[i].Mood))
		dc.Stroke()
	}

	for i, p := range pts {
		dc.SetColor(chartPoint)
		dc.DrawCircle(xAt(i), yAt(p.Mood), 4)
		dc.Fill()
	}

	dc.SetColor(chartLabelC)
	caption := fmt.Sprintf("avg %.1f · trend %s", summary.AverageMood, summary.Trend)
	dc.DrawStringAnchored(caption, chartWidth/2, float64(chartHeight)-chartPad/2, 0.5, 0.5)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func loadChartFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
