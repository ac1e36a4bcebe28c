package hcl

import (
	"context"
	"fmt"

	"github.com/vk/sc2ta/internal/ctxlog"
	"github.com/vk/sc2ta/internal/fsutil"
	"github.com/vk/sc2ta/internal/trace"
)

type traceFile struct {
	Entries []*entryBlock `hcl:"entry,block"`
}

type entryBlock struct {
	Kind    string         `hcl:"kind,label"`
	Scope   string         `hcl:"scope"`
	Element string         `hcl:"element"`
	Targets []*targetBlock `hcl:"target,block"`
}

type targetBlock struct {
	Scope   string `hcl:"scope"`
	Element string `hcl:"element"`
}

// SaveTrace writes the trace record.
func (s *Store) SaveTrace(ctx context.Context, path string, tr *trace.Trace) error {
	ctxlog.FromContext(ctx).Debug("Saving trace.", "path", path)
	if err := fsutil.WriteFile(path, EncodeTrace(tr), artifactMode); err != nil {
		return fmt.Errorf("failed to save trace to %s: %w", path, err)
	}
	return nil
}

// LoadTrace reads a trace written by SaveTrace. The result is sealed.
func (s *Store) LoadTrace(ctx context.Context, path string) (*trace.Trace, error) {
	ctxlog.FromContext(ctx).Debug("Loading trace.", "path", path)
	var f traceFile
	if err := decodeSchemaFile(path, &f); err != nil {
		return nil, err
	}
	tr := trace.New()
	for _, eb := range f.Entries {
		kind, err := trace.ParseKind(eb.Kind)
		if err != nil {
			return nil, fmt.Errorf("invalid trace in %s: %w", path, err)
		}
		targets := make([]trace.Ref, 0, len(eb.Targets))
		for _, tb := range eb.Targets {
			targets = append(targets, trace.Ref{Scope: tb.Scope, Element: tb.Element})
		}
		if err := tr.Add(kind, trace.Ref{Scope: eb.Scope, Element: eb.Element}, targets...); err != nil {
			return nil, fmt.Errorf("invalid trace in %s: %w", path, err)
		}
	}
	tr.Seal()
	return tr, nil
}

// EncodeTrace renders a trace in the schema LoadTrace reads.
func EncodeTrace(tr *trace.Trace) []byte {
	var f traceFile
	for _, e := range tr.Entries() {
		eb := &entryBlock{Kind: string(e.Kind), Scope: e.Source.Scope, Element: e.Source.Element}
		for _, target := range e.Targets {
			eb.Targets = append(eb.Targets, &targetBlock{Scope: target.Scope, Element: target.Element})
		}
		f.Entries = append(f.Entries, eb)
	}
	return encodeSchema(&f)
}
