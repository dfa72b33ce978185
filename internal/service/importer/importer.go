package importer

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/domain"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
)

// Importer converts uploaded resume files into profile documents so the
// analysis pipeline treats them the same as scraped profiles.
type Importer struct {
	logger *zap.Logger
}

func NewImporter(logger *zap.Logger) *Importer {
	return &Importer{logger: logger}
}

// ImportResume extracts plain text from the uploaded file and parses it
// into a profile. Supported formats are PDF, DOCX and plain text.
func (im *Importer) ImportResume(filename string, data []byte) (*domain.Profile, error) {
	if len(data) == 0 {
		return nil, errors.NewValidationError("resume file is empty", "resume", filename)
	}
	if int64(len(data)) > constants.InputLimits.MaxResumeBytes {
		return nil, errors.NewValidationError(
			fmt.Sprintf("resume exceeds %d MB limit", constants.InputLimits.MaxResumeBytes>>20),
			"resume", filename,
		)
	}

	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text = string(data)
	default:
		return nil, errors.NewValidationError("unsupported resume format, use PDF, DOCX or TXT", "resume", filename)
	}
	if err != nil {
		verr := errors.NewValidationError("failed to read resume file", "resume", filename)
		verr.Cause = err
		return nil, verr
	}

	profile := parseResumeText(text)
	if profile.Name == "" && len(profile.Experiences) == 0 && len(profile.Skills) == 0 {
		return nil, errors.NewValidationError("could not extract any profile content from resume", "resume", filename)
	}

	profile.Source = domain.ProfileSourceResume
	profile.ScrapedAt = time.Now()

	im.logger.Info("Resume imported",
		zap.String("file", filename),
		zap.String("name", profile.Name),
		zap.Int("experiences", len(profile.Experiences)),
		zap.Int("skills", len(profile.Skills)),
	)
	return profile, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxTokenPattern matches text runs and paragraph ends in document.xml
var docxTokenPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>|</w:p>`)

func docxPlainText(content string) string {
	var b strings.Builder
	for _, m := range docxTokenPattern.FindAllStringSubmatch(content, -1) {
		if m[0] == "</w:p>" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(html.UnescapeString(m[1]))
	}
	return b.String()
}
