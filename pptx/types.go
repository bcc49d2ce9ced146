package pptx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// XML namespaces used in PPTX files.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsTable          = "http://schemas.openxmlformats.org/drawingml/2006/table"
)

// Relationship types.
const (
	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeSlide          = nsRelationships + "/slide"
	relTypeSlideLayout    = nsRelationships + "/slideLayout"
	relTypeSlideMaster    = nsRelationships + "/slideMaster"
	relTypeImage          = nsRelationships + "/image"
)

const contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName        xml.Name           `xml:"presentation"`
	SldMasterIdLst *sldMasterIdLstXML `xml:"sldMasterIdLst"`
	SlideIdList    *slideIdListXML    `xml:"sldIdLst"`
	SlideSz        *slideSzXML        `xml:"sldSz"`
}

type sldMasterIdLstXML struct {
	SldMasterId []slideIdXML `xml:"sldMasterId"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

// slideIdXML is a sldId, sldMasterId or sldLayoutId entry. It carries two
// attributes named "id" in different namespaces, so it decodes itself.
type slideIdXML struct {
	ID  uint32 // Unqualified id attribute
	RID string // r:id attribute for relationship
}

func (s *slideIdXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local != "id" {
			continue
		}
		switch a.Name.Space {
		case "":
			id, err := strconv.ParseUint(a.Value, 10, 32)
			if err != nil {
				return fmt.Errorf("parsing %s id %q: %w", start.Name.Local, a.Value, err)
			}
			s.ID = uint32(id)
		case nsRelationships:
			s.RID = a.Value
		}
	}
	return d.Skip()
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// slideMasterXML represents a ppt/slideMasters/slideMaster*.xml file.
type slideMasterXML struct {
	XMLName        xml.Name           `xml:"sldMaster"`
	SldLayoutIdLst *sldLayoutIdLstXML `xml:"sldLayoutIdLst"`
}

type sldLayoutIdLstXML struct {
	SldLayoutId []slideIdXML `xml:"sldLayoutId"`
}

// slideLayoutXML represents a ppt/slideLayouts/slideLayout*.xml file.
type slideLayoutXML struct {
	XMLName xml.Name `xml:"sldLayout"`
	Type    string   `xml:"type,attr"`
	CSld    cSldXML  `xml:"cSld"`
}

// slideXML represents a ppt/slides/slide*.xml file structure.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	Name   string    `xml:"name,attr"`
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML represents the shape tree containing all shapes on a slide.
type spTreeXML struct {
	Sp           []spXML           `xml:"sp"`
	Pic          []picXML          `xml:"pic"`
	GraphicFrame []graphicFrameXML `xml:"graphicFrame"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"` // Placeholder info
}

type phXML struct {
	Type string `xml:"type,attr"` // title, body, subTitle, ctrTitle, etc.
	Idx  uint32 `xml:"idx,attr"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	P []pXML `xml:"p"` // Paragraphs
}

// pXML represents a paragraph.
type pXML struct {
	R   []rXML   `xml:"r"`   // Text runs
	Fld []fldXML `xml:"fld"` // Fields (like slide number)
}

// rXML represents a text run.
type rXML struct {
	T string `xml:"t"` // Text content
}

type fldXML struct {
	T string `xml:"t"` // Field value
}

// picXML represents a picture element.
type picXML struct {
	NvPicPr nvPicPrXML `xml:"nvPicPr"`
}

type nvPicPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

// graphicFrameXML represents a graphic frame (tables, charts).
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// contentTypesXML represents [Content_Types].xml.
type contentTypesXML struct {
	XMLName  xml.Name          `xml:"Types"`
	Default  []defaultTypeXML  `xml:"Default"`
	Override []overrideTypeXML `xml:"Override"`
}

type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}
