package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edujobs-backend/internal/render"
)

type sample struct {
	name string
	doc  render.Document
	info render.Info
	src  any
}

func main() {
	outDir := flag.String("out", "./out", "output directory for generated PDFs")
	flag.Parse()

	started := time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC)
	cv := render.CVSource{
		Name:   "Sari Wulandari",
		Email:  "sari.wulandari@example.com",
		Bio:    "Guru matematika dengan tujuh tahun pengalaman mengajar di sekolah menengah.",
		Skills: []string{"Kurikulum Merdeka", "Google Classroom", "Public speaking"},
		Experiences: []render.Experience{
			{Title: "Guru Matematika", Company: "SMA Negeri 3 Bandung", StartDate: &started},
		},
	}
	cert := render.CertificateSource{
		RecipientName: "Sari Wulandari",
		CourseTitle:   "Pembelajaran Berdiferensiasi",
		Code:          "CERT-1A2B3C4D",
		IssuedAt:      time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
	}

	samples := []sample{
		{name: "sample_cv", doc: render.CVDocument(cv), info: render.Info{Title: "CV - " + cv.Name}, src: cv},
		{name: "sample_certificate", doc: render.CertificateDocument(cert), info: render.Info{Title: "Certificate " + cert.Code}, src: cert},
	}

	pdf := render.PDF{}
	for _, s := range samples {
		path, err := writeSample(*outDir, pdf, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", s.name, err)
			os.Exit(1)
		}
		fmt.Printf("OK: wrote %s\n", path)
	}
}

func writeSample(dir string, pdf render.PDF, s sample) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf, s.doc, s.info); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	if err := validateRenderedPDF(buf.Bytes()); err != nil {
		return "", fmt.Errorf("validate: %w", err)
	}

	path := filepath.Join(dir, s.name+".pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(s.src, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, s.name+"_source.json"), payload, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func validateRenderedPDF(b []byte) error {
	pages, err := render.PageCount(b)
	if err != nil {
		return err
	}
	if pages != 1 {
		return fmt.Errorf("expected 1 page, got %d", pages)
	}
	text, err := render.ExtractText(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: text extraction failed: %v\n", err)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "warning: extracted text is empty")
	}
	return nil
}
