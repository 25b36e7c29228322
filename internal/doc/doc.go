// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package doc provides functions to generate documentation for mapping libraries in Markdown format.
package doc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/marcusjacobson/sitlib"
	"github.com/nao1215/markdown"
)

var (
	ErrReadmeGenerationFailed = fmt.Errorf("failed to generate README")
)

// SitLibReadmeMd generates a Markdown formatted README for the given mapping library bundles.
// The bundles must already have been fetched.
func SitLibReadmeMd(ctx context.Context, w io.Writer, bundles ...sitlib.BundleReference) error {
	if len(bundles) == 0 {
		return errors.New("doc.SitLibReadmeMd: at least one bundle is required")
	}

	lib := sitlib.NewSitLib(nil)
	if err := lib.Init(ctx, sitlib.BundleReferences(bundles).FSs()...); err != nil {
		return fmt.Errorf("doc.SitLibReadmeMd: failed to initialize library: %w", err)
	}

	metadataS := lib.Metadata()
	metad := metadataS[len(metadataS)-1]

	md := markdown.NewMarkdown(w)

	md = sitLibReadmeMdTitle(md, metad)
	md = sitLibReadmeMdDependencies(md, metad.Dependencies())
	md = sitLibReadmeMdUsage(md, bundles[len(bundles)-1].String())
	md = md.HorizontalRule()
	md = sitLibReadmeMdContents(md, lib)

	err := md.Build()
	if err != nil {
		return errors.Join(ErrReadmeGenerationFailed, err)
	}

	return nil
}

func sitLibReadmeMdTitle(md *markdown.Markdown, metad *sitlib.Metadata) *markdown.Markdown {
	name := metad.Name()
	if name == "" {
		name = "No name in metadata"
	}

	displayName := metad.DisplayName()
	if displayName == "" {
		displayName = "No display name in metadata"
	}

	description := metad.Description()
	if description == "" {
		description = "No description in metadata"
	}

	return md.H1f("%s (%s)", name, displayName).LF().
		PlainText(description).LF()
}

func sitLibReadmeMdDependencies(
	md *markdown.Markdown,
	deps sitlib.BundleReferences,
) *markdown.Markdown {
	if len(deps) == 0 {
		return md
	}

	md = md.H2("Dependencies").LF()
	for _, dep := range deps {
		md = md.BulletList(dep.String())
	}

	return md.LF()
}

func sitLibReadmeMdUsage(md *markdown.Markdown, url string) *markdown.Markdown {
	return md.H2("Usage").LF().
		CodeBlocks(markdown.SyntaxHighlight("shell"), fmt.Sprintf(`# Resolve wrapped identifiers in a scan export against this library
sitlibtool report scan-results.csv --column Classification --library %q`, url)).LF()
}

func sitLibReadmeMdContents(md *markdown.Markdown, lib *sitlib.SitLib) *markdown.Markdown {
	md = md.H2("Contents").LF()
	if lib.Len() == 0 {
		return md.PlainText("This library contains no mapping entries.").LF()
	}

	md = md.PlainText(fmt.Sprintf("This library maps %d sensitive information type identifiers to display names:", lib.Len())).
		LF()

	t := markdown.TableSet{
		Header: []string{"Identifier", "Display Name", "Publisher"},
		Rows:   [][]string{},
	}
	for _, id := range lib.IDs() {
		ent := lib.Entry(id)
		t.Rows = append(t.Rows, []string{ent.ID, ent.DisplayName, ent.Publisher})
	}

	return md.Table(t).LF()
}
