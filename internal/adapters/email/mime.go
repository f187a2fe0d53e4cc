package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"webinarregistration/internal/domain"
)

// buildMessage renders msg as an RFC 5322 message:
// multipart/mixed wrapping a text/html alternative and the attachments.
func buildMessage(from mail.Address, msg *domain.OutboundMessage, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	to := mail.Address{Name: msg.ToName, Address: msg.To}

	mixed := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("From", from.String())
	header.Set("To", to.String())
	header.Set("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header.Set("Date", now.Format(time.RFC1123Z))
	header.Set("MIME-Version", "1.0")
	header.Set("Content-Type", "multipart/mixed; boundary="+mixed.Boundary())
	writeHeader(&buf, header)

	altBoundary := multipart.NewWriter(io.Discard).Boundary()
	altHeader := textproto.MIMEHeader{}
	altHeader.Set("Content-Type", "multipart/alternative; boundary="+altBoundary)
	part, err := mixed.CreatePart(altHeader)
	if err != nil {
		return nil, err
	}
	alt := multipart.NewWriter(part)
	if err := alt.SetBoundary(altBoundary); err != nil {
		return nil, err
	}
	if msg.TextBody != "" {
		if err := writeQuotedPart(alt, "text/plain; charset=utf-8", msg.TextBody); err != nil {
			return nil, err
		}
	}
	if msg.HTMLBody != "" {
		if err := writeQuotedPart(alt, "text/html; charset=utf-8", msg.HTMLBody); err != nil {
			return nil, err
		}
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		if err := writeAttachment(mixed, a); err != nil {
			return nil, fmt.Errorf("attachment %s: %w", a.Filename, err)
		}
	}
	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, h textproto.MIMEHeader) {
	for _, k := range []string{"From", "To", "Subject", "Date", "MIME-Version", "Content-Type"} {
		fmt.Fprintf(w, "%s: %s\r\n", k, h.Get(k))
	}
	io.WriteString(w, "\r\n")
}

func writeQuotedPart(mw *multipart.Writer, contentType, body string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, body); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(mw *multipart.Writer, a domain.Attachment) error {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", mime.FormatMediaType(baseType(contentType), mediaParams(contentType, a.Filename)))
	h.Set("Content-Transfer-Encoding", "base64")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	enc := base64.StdEncoding.EncodeToString(a.Content)
	for len(enc) > 76 {
		if _, err := io.WriteString(part, enc[:76]+"\r\n"); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err = io.WriteString(part, enc+"\r\n")
	return err
}

func baseType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	}
	return mt
}

func mediaParams(contentType, filename string) map[string]string {
	params := map[string]string{}
	if _, p, err := mime.ParseMediaType(contentType); err == nil {
		for k, v := range p {
			params[k] = v
		}
	}
	params["name"] = filename
	return params
}
