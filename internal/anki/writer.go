package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AddNote queues a new note of model in deck with one card for the first
// template. Missing trailing fields are left empty.
func (p *Package) AddNote(model *Model, deck *Deck, fields []string, tags []string) (*Note, error) {
	if model == nil {
		return nil, fmt.Errorf("no note type selected")
	}
	if deck == nil {
		return nil, fmt.Errorf("no deck selected")
	}
	if len(model.Fields) == 0 {
		return nil, fmt.Errorf("note type %q has no fields", model.Name)
	}
	if len(fields) > len(model.Fields) {
		return nil, fmt.Errorf("note type %q has %d fields, got %d", model.Name, len(model.Fields), len(fields))
	}

	values := make([]string, len(model.Fields))
	copy(values, fields)

	now := time.Now()
	note := &Note{
		ID:      p.nextID(now),
		GUID:    uuid.NewString(),
		ModelID: model.ID,
		Mod:     now.Unix(),
		USN:     -1,
		Tags:    joinTags(tags),
		Fields:  values,
		RawFlds: strings.Join(values, fieldSeparator),
		SFLD:    values[0],
		CSum:    checksum(values[0]),
	}
	p.Notes = append(p.Notes, note)

	card := &Card{
		ID:     p.nextID(now),
		NoteID: note.ID,
		DeckID: deck.ID,
		Mod:    note.Mod,
		USN:    -1,
		Due:    len(p.Notes),
	}
	p.Cards = append(p.Cards, card)
	p.pendingNotes = append(p.pendingNotes, note)
	p.pendingCards = append(p.pendingCards, card)
	return note, nil
}

// nextID returns a millisecond timestamp greater than every note and card
// ID already in the package.
func (p *Package) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, n := range p.Notes {
		if n.ID >= id {
			id = n.ID + 1
		}
	}
	for _, c := range p.Cards {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	return id
}

// joinTags formats tags the way the notes table stores them.
func joinTags(tags []string) string {
	var clean []string
	for _, t := range tags {
		t = strings.Join(strings.Fields(t), "_")
		if t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return " " + strings.Join(clean, " ") + " "
}

// checksum is the first 8 hex digits of the SHA-1 of the sort field.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	csum, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return csum
}

// SaveAs writes queued notes to the collection and zips the package to a
// new .apkg file.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.insertPending(); err != nil {
		return fmt.Errorf("updating database: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	zipWriter := zip.NewWriter(outFile)

	err = filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}
		return addToZip(zipWriter, filepath.ToSlash(relPath), path)
	})
	if err != nil {
		zipWriter.Close()
		return fmt.Errorf("creating zip: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("finalizing zip: %w", err)
	}
	return nil
}

func addToZip(zw *zip.Writer, name, path string) error {
	writer, err := zw.Create(name)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(writer, file)
	return err
}

// insertPending writes queued notes and cards in one transaction.
func (p *Package) insertPending() error {
	if len(p.pendingNotes) == 0 && len(p.pendingCards) == 0 {
		return nil
	}

	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, n := range p.pendingNotes {
		_, err := tx.Exec(`
			INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.ID, n.GUID, n.ModelID, n.Mod, n.USN, n.Tags, n.RawFlds, n.SFLD, n.CSum, n.Flags, n.Data)
		if err != nil {
			return fmt.Errorf("inserting note %d: %w", n.ID, err)
		}
	}

	for _, c := range p.pendingCards {
		_, err := tx.Exec(`
			INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.NoteID, c.DeckID, c.Ord, c.Mod, c.USN, c.Type, c.Queue, c.Due,
			c.IVL, c.Factor, c.Reps, c.Lapses, c.Left, c.ODue, c.ODid, c.Flags, c.Data)
		if err != nil {
			return fmt.Errorf("inserting card %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	p.pendingNotes = nil
	p.pendingCards = nil
	return nil
}
