// Package outline synthesizes structured presentation outlines from
// chunks. The primary path delegates to an external generative service
// under a strict JSON contract; a deterministic heuristic path built
// from term-frequency statistics serves as the fallback and never fails.
package outline

import (
	"errors"
	"fmt"
)

// BlockType identifies the role of an outline block.
type BlockType string

const (
	BlockTitle      BlockType = "title"
	BlockSection    BlockType = "section"
	BlockConclusion BlockType = "conclusion"
)

// maxPointsPerSection caps the bullet points carried by any block.
const maxPointsPerSection = 6

// Block is one outline unit, rendered as one visual slide. Title
// blocks carry no points.
type Block struct {
	Type   BlockType `json:"type"`
	Title  string    `json:"title"`
	Points []string  `json:"points,omitempty"`
}

// Outline is an ordered sequence of blocks: exactly one title block
// first, zero or more sections, and exactly one conclusion block last.
type Outline []Block

// Validate checks the outline invariant: title first, conclusion last
// with non-empty points, and every section carrying 1-6 points.
func (o Outline) Validate() error {
	if len(o) < 2 {
		return errors.New("outline needs at least a title and a conclusion block")
	}
	if o[0].Type != BlockTitle {
		return fmt.Errorf("first block must be %q, got %q", BlockTitle, o[0].Type)
	}
	last := o[len(o)-1]
	if last.Type != BlockConclusion {
		return fmt.Errorf("last block must be %q, got %q", BlockConclusion, last.Type)
	}
	if len(last.Points) == 0 {
		return errors.New("conclusion block must have points")
	}
	for i, block := range o[1 : len(o)-1] {
		if block.Type != BlockSection {
			return fmt.Errorf("block %d must be %q, got %q", i+1, BlockSection, block.Type)
		}
		if len(block.Points) < 1 || len(block.Points) > maxPointsPerSection {
			return fmt.Errorf("section %q has %d points, want 1-%d", block.Title, len(block.Points), maxPointsPerSection)
		}
	}
	return nil
}

// Sections returns the section blocks between title and conclusion.
func (o Outline) Sections() []Block {
	if len(o) < 2 {
		return nil
	}
	return o[1 : len(o)-1]
}
