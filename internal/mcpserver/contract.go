package mcpserver

// NoteFormatContract describes the movie note format that LLM consumers
// should expect when reading or creating notes through the tools.
const NoteFormatContract = `# Reelsync Movie Note Format

Every movie or series note managed by reelsync is a Markdown file with YAML
frontmatter. The sync pipeline owns the mapped metadata properties; anything
else in the frontmatter and the whole body belong to the user and are never
touched.

## Structure

` + "```" + `markdown
---
imdbid: tt0113277                   # REQUIRED - the IMDb identifier driving sync
title: Heat                         # written by sync from the Title field
year: 1995                          # whole years become numbers, ranges stay strings
director: "[[Michael Mann]]"        # people and list fields become wikilinks
actors:
  - "[[Al Pacino]]"
  - "[[Robert De Niro]]"
genre:
  - "[[Crime]]"
rating: "8.3"                       # imdbRating, mapped to the rating property
released: 1995-12-15                # dates become ISO-8601
runtime: 170                        # minutes, as a number
mood: tense                         # user property, left alone by sync
---

Body text in standard Markdown. Never modified by sync.
` + "```" + `

## Rules

1. **The identifier property (default ` + "`" + `imdbid` + "`" + `) drives everything.** Notes
   without frontmatter or without the identifier are skipped, never failed.
2. **Property order is preserved.** Sync overwrites mapped values in place and
   appends new ones at the end.
3. **The ` + "`" + `N/A` + "`" + ` sentinel never lands in a note.** A field OMDb reports as
   ` + "`" + `N/A` + "`" + ` leaves any existing value untouched.
4. **File names** for feature films are ` + "`" + `Title (Year).md` + "`" + `; series use the
   bare title. Characters invalid in file names are replaced with ` + "`" + `-` + "`" + `.
5. **Paths** use forward slashes and end with ` + "`" + `.md` + "`" + `.

## Creating notes

Prefer the ` + "`" + `create_note` + "`" + ` tool with an IMDb ID or title URL. It resolves
the title, picks the movie or series folder, applies the configured template,
seeds the identifier, and runs a first sync in one step.
`
