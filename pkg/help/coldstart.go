package help

const ColdstartYAML = `# wikilinks Quick Start

formats:
  sql: "MySQL dump with schema, INSERTs and indexes (default, stdout)"
  ndjson: "One JSON object per page or link"
  sqlite: "Rows loaded into a SQLite file (needs --output)"

inputs:
  plain: "dewiki-latest-pages-articles.xml"
  compressed: ".bz2, .gz and .zst are decompressed while reading"
  stdin: "-"

commands:
  mysql_dump: |
    wikilinks dewiki-latest-pages-articles.xml.bz2 > links.sql
    mysql wiki < links.sql

  ndjson: |
    wikilinks --format ndjson -o links.ndjson dump.xml

  sqlite: |
    wikilinks --format sqlite -o links.db --summary run.yaml dump.xml.bz2

  query_sqlite: |
    wikilinks stats --db links.db
    wikilinks links --db links.db "Flugzeug"

  from_stdin: |
    bzcat dump.xml.bz2 | wikilinks --format ndjson -

  file_named_like_a_command: |
    # "wikilinks stats" runs the stats command; prefix the path instead
    wikilinks --format ndjson ./stats

config_file: |
  # wikilinks --config dump.yaml
  input: dewiki-latest-pages-articles.xml.bz2
  format: sqlite
  output: links.db
  max_links: 15
  reserved_prefixes: ["Bild:", "Kategorie:", "Image:"]
  progress_every: 100000

rules:
  - "Page ids count from 1 in dump order"
  - "At most 15 links per page, first occurrences win"
  - "Targets with a colon, a leading # or only digits are skipped"
  - "Exit code 1 for usage errors, 2 for malformed dumps or write failures"
`
