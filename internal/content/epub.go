package content

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

var (
	errNoContainer = errors.New("epub: missing META-INF/container.xml")
	errNoRootfile  = errors.New("epub: no rootfile in container.xml")
	errEmptySpine  = errors.New("epub: no content in spine")
)

// EPUBExtractor reads the spine documents of an EPUB in reading order.
// Non-linear spine items are skipped.
type EPUBExtractor struct{}

type epubContainer struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef  string `xml:"idref,attr"`
		Linear string `xml:"linear,attr"`
	} `xml:"spine>itemref"`
}

type epubEncryption struct {
	Data []struct {
		CipherData struct {
			CipherReference struct {
				URI string `xml:"URI,attr"`
			} `xml:"CipherReference"`
		} `xml:"CipherData"`
	} `xml:"EncryptedData"`
}

func (e *EPUBExtractor) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("epub: invalid archive: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	if err := checkEPUBEncryption(files); err != nil {
		return "", err
	}

	opfPath, err := epubRootfile(files)
	if err != nil {
		return "", err
	}
	var pkg epubPackage
	if err := readXML(files, opfPath, &pkg); err != nil {
		return "", fmt.Errorf("epub: package document: %w", err)
	}

	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		hrefs[item.ID] = item.Href
	}

	baseDir := path.Dir(opfPath)
	var paragraphs []string
	for _, ref := range pkg.Spine {
		if ref.Linear == "no" {
			continue
		}
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		doc, err := readZipFile(files, path.Join(baseDir, href))
		if err != nil {
			continue
		}
		chapter, err := htmlParagraphs(doc)
		if err != nil {
			return "", fmt.Errorf("epub: %s: %w", href, err)
		}
		paragraphs = append(paragraphs, chapter...)
	}
	if len(paragraphs) == 0 && len(pkg.Spine) == 0 {
		return "", errEmptySpine
	}
	return joinParagraphs(paragraphs), nil
}

func epubRootfile(files map[string]*zip.File) (string, error) {
	var container epubContainer
	if _, ok := files["META-INF/container.xml"]; !ok {
		return "", errNoContainer
	}
	if err := readXML(files, "META-INF/container.xml", &container); err != nil {
		return "", fmt.Errorf("epub: container.xml: %w", err)
	}
	for _, rf := range container.Rootfiles {
		if rf.FullPath != "" && (rf.MediaType == "" || rf.MediaType == "application/oebps-package+xml") {
			return rf.FullPath, nil
		}
	}
	return "", errNoRootfile
}

// checkEPUBEncryption rejects books whose content documents are encrypted.
// Obfuscated fonts are allowed.
func checkEPUBEncryption(files map[string]*zip.File) error {
	if _, ok := files["META-INF/rights.xml"]; ok {
		return ErrDRMProtected
	}
	if _, ok := files["META-INF/encryption.xml"]; !ok {
		return nil
	}
	var enc epubEncryption
	if err := readXML(files, "META-INF/encryption.xml", &enc); err != nil {
		return nil
	}
	for _, d := range enc.Data {
		switch strings.ToLower(path.Ext(d.CipherData.CipherReference.URI)) {
		case ".ttf", ".otf", ".woff", ".woff2":
		default:
			return ErrDRMProtected
		}
	}
	return nil
}

func readXML(files map[string]*zip.File, name string, v any) error {
	data, err := readZipFile(files, name)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("missing %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
