package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const report = `Quarterly report, third quarter.
Revenue grew by twelve percent compared with the previous quarter, driven by strong demand in the European and Asian markets.
The new subscription product was a success and now represents a fifth of recurring revenue.
Operating costs rose more slowly than revenue thanks to the migration of the billing platform.
Two risks remain: a shortage of qualified engineers and a pending lawsuit over a supplier contract.
The board is confident that the growth will continue next year.`

func main() {
	outputDir := flag.String("out", "./test_data", "Destination directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create %s: %v\n", *outputDir, err)
		os.Exit(1)
	}

	fmt.Println("Docusense: generating sample documents...")

	steps := []struct {
		name string
		fn   func(path string) error
	}{
		{"report.pdf", genPDF},
		{"scanned.pdf", genBlankPDF},
		{"notes.txt", genText},
		{"too_short.txt", func(path string) error { return os.WriteFile(path, []byte("Too short."), 0o644) }},
		{"capture.png", genImage},
	}
	failed := false
	for _, step := range steps {
		path := filepath.Join(*outputDir, step.name)
		if err := step.fn(path); err != nil {
			fmt.Printf("  %-14s error: %v\n", step.name, err)
			failed = true
			continue
		}
		fmt.Printf("  %-14s ok\n", step.name)
	}
	if failed {
		os.Exit(1)
	}
	fmt.Printf("\nReady: docusense analyze --file %s --type deep\n", filepath.Join(*outputDir, "report.pdf"))
}

// genPDF writes the report over two pages so that page joining is exercised.
func genPDF(path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	lines := strings.Split(report, "\n")
	for i, line := range lines {
		if i%3 == 0 {
			pdf.AddPage()
			pdf.SetFont("Arial", "", 12)
		}
		pdf.MultiCell(0, 8, line, "", "", false)
	}
	return pdf.OutputFileAndClose(path)
}

// genBlankPDF mimics a scanned document: pages without a text layer.
func genBlankPDF(path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFillColor(200, 200, 200)
	pdf.Rect(20, 20, 170, 250, "F")
	return pdf.OutputFileAndClose(path)
}

func genText(path string) error {
	return os.WriteFile(path, []byte(report+"\n"), 0o644)
}

// genImage creates a PNG, a type the server must reject.
func genImage(path string) error {
	width, height := 320, 200
	img := image.NewRGBA(image.Rectangle{Max: image.Point{X: width, Y: height}})
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: 100, B: 200, A: 0xff})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
