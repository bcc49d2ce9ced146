// Package notes segments raw slide notes into slide records and normalizes
// slide headers into display titles.
//
// Notes are plain text in which each slide starts with a header line:
//
//	Slide 1: Title Slide
//	Slide 2: Overview
//	Point A
//	Presenter note: mention the history
//	Point B
//	Lecture 3 - Data
//	key1: val1
//
// A header line is any line consisting of optional decoration (markdown
// hashes, asterisks, dashes), the label "slide" or "lecture", a number, and
// optionally a separator (":", "-", "–", "—") followed by the title text.
// Matching is case-insensitive.
//
// [Parse] returns one [Record] per header. Blank lines and presenter notes
// (lines starting with "presenter note", case-insensitive) never reach a
// record's content. Text before the first header is discarded, so input
// without any header yields no records.
//
// [NormalizeTitle] turns a raw header into the title shown on the slide:
//
//	notes.NormalizeTitle("Slide 2: Overview", "Intro")  // "Overview"
//	notes.NormalizeTitle("Slide 1: Anything", "Intro")  // "Intro"
package notes
