package dump

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/wikilinks/models"
)

// sampleDump is a trimmed export in the shape of dewiki-*-pages-articles.xml.
const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/" version="0.11" xml:lang="de">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <namespaces>
      <namespace key="6" case="first-letter">Datei</namespace>
      <namespace key="14" case="first-letter">Kategorie</namespace>
    </namespaces>
  </siteinfo>
  <page>
    <title>Flugzeug</title>
    <ns>0</ns>
    <id>12</id>
    <revision>
      <id>100</id>
      <text bytes="120" xml:space="preserve">Ein '''Flugzeug''' ist ein [[Luftfahrzeug]] mit [[Tragfläche|Tragflächen]].
[[Bild:A380.jpg|thumb]] Erstflug [[1903]]. Siehe [[Flugzeug#Flugsteuerung]] und [[Otto_Lilienthal]].
[[Kategorie:Flugzeug]]
[[en:Airplane]]</text>
    </revision>
  </page>
  <page>
    <title>  Leere Seite </title>
    <ns>0</ns>
    <id>13</id>
    <revision>
      <id>101</id>
      <text bytes="0" xml:space="preserve" />
    </revision>
  </page>
  <page>
    <title>Tom &amp; Jerry</title>
    <ns>0</ns>
    <id>14</id>
    <redirect title="Tom und Jerry" />
    <revision>
      <id>102</id>
      <!-- a comment the decoder skips -->
      <text bytes="30" xml:space="preserve"><![CDATA[#WEITERLEITUNG [[Tom und Jerry]]]]></text>
    </revision>
  </page>
</mediawiki>
`

// record is either a page or a link, in the order a sink saw them.
type record struct {
	page *models.Page
	link *models.Link
}

func (r record) String() string {
	if r.page != nil {
		return fmt.Sprintf("page(%d, %q)", r.page.ID, r.page.Title)
	}
	return fmt.Sprintf("link(%d, %q)", r.link.PageID, r.link.Target)
}

type recordingSink struct {
	records  []record
	failPage int64
}

var errSinkFull = errors.New("sink full")

func (s *recordingSink) WritePage(p models.Page) error {
	if s.failPage != 0 && p.ID == s.failPage {
		return errSinkFull
	}
	s.records = append(s.records, record{page: &p})
	return nil
}

func (s *recordingSink) WriteLink(l models.Link) error {
	s.records = append(s.records, record{link: &l})
	return nil
}

func (s *recordingSink) pages() []models.Page {
	var out []models.Page
	for _, r := range s.records {
		if r.page != nil {
			out = append(out, *r.page)
		}
	}
	return out
}

func pageRec(id int64, title string) record {
	return record{page: &models.Page{ID: id, Title: title}}
}

func linkRec(pageID int64, target string) record {
	return record{link: &models.Link{PageID: pageID, Target: target}}
}
