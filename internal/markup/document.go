package markup

import "encoding/xml"

// Repeatable children are slices so that a single element and a list of
// elements decode the same way. Nothing past decoding checks "one or many".

type modelRoot struct {
	XMLName   xml.Name        `xml:"modelRoot"`
	TypeLists []modelTypeList `xml:"modelTypeList"`
}

type modelTypeList struct {
	Aliases  []dcAliasElem `xml:"dcAlias"`
	Services []serviceElem `xml:"service"`
	DCs      []dcElem      `xml:"dc"`
	Entities []entityElem  `xml:"entity"`
}

type dcAliasElem struct {
	ID     string `xml:"Id,attr"`
	DcName string `xml:"dcName,attr"`
	DcID   string `xml:"dcId,attr"`
}

type serviceElem struct {
	ID         string           `xml:"Id,attr"`
	Name       string           `xml:"name,attr"`
	Operations []operationGroup `xml:"propertyOperationList>serviceHasPropertyOperationList"`
}

type operationGroup struct {
	Items []operationElem `xml:"propertyOperation"`
}

type operationElem struct {
	ID          string `xml:"Id,attr"`
	Name        string `xml:"name,attr"`
	ReturnDcID  string `xml:"returnDcId,attr"`
	RequestDcID string `xml:"requestDcId,attr"`
}

// dcElem is a logical type.
type dcElem struct {
	ID           string            `xml:"Id,attr"`
	Name         string            `xml:"name,attr"`
	Properties   []dcPropertyGroup `xml:"propertyDcList>dcBaseHasPropertyDcList"`
	Associations []associationElem `xml:"associationDcList>associationDc"`
}

type dcPropertyGroup struct {
	Items []propertyElem `xml:"propertyDc"`
}

// entityElem is a database-schema type.
type entityElem struct {
	ID           string                `xml:"Id,attr"`
	Name         string                `xml:"name,attr"`
	Properties   []entityPropertyGroup `xml:"propertyList>entityHasProperties"`
	Navigation   []navigationGroup     `xml:"navigationPropertyList>entityHasNavigationPropertyList"`
	Associations []associationElem     `xml:"associationList>association"`
}

type entityPropertyGroup struct {
	Items []propertyElem `xml:"property"`
}

type navigationGroup struct {
	Items []namedElem `xml:"navigationProperty"`
}

type propertyElem struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type namedElem struct {
	Name string `xml:"name,attr"`
}

type associationElem struct {
	ID                 string `xml:"Id,attr"`
	Name               string `xml:"name,attr"`
	SourceMultiplicity string `xml:"sourceMultiplicityAlias,attr"`
	TargetMultiplicity string `xml:"targetMultiplicityAlias,attr"`
}

type diagramRoot struct {
	XMLName xml.Name
	Nested  []shapeLists `xml:"nestedChildShapes"`
}

type shapeLists struct {
	EntityDcShapes []shapeElem     `xml:"entityDcShape"`
	ServiceShapes  []shapeElem     `xml:"serviceShape"`
	AliasShapes    []shapeElem     `xml:"dcAliasShape"`
	EntityShapes   []shapeElem     `xml:"entityShape"`
	Connectors     []connectorElem `xml:"associationConnector"`
}

// shapeElem carries every moniker name; the caller picks the one matching the element kind.
type shapeElem struct {
	ID             string   `xml:"Id,attr"`
	AbsoluteBounds string   `xml:"absoluteBounds,attr"`
	OutlineColor   string   `xml:"outlineColor,attr"`
	DcMoniker      *moniker `xml:"dcMoniker"`
	ServiceMoniker *moniker `xml:"serviceMoniker"`
	AliasMoniker   *moniker `xml:"dcAliasMoniker"`
	EntityMoniker  *moniker `xml:"entityMoniker"`
}

type connectorElem struct {
	ID                   string   `xml:"Id,attr"`
	EdgePoints           string   `xml:"edgePoints,attr"`
	AssociationDcMoniker *moniker `xml:"associationDcMoniker"`
	AssociationMoniker   *moniker `xml:"associationMoniker"`
}

type moniker struct {
	ID string `xml:"Id,attr"`
}

func (m *moniker) ref() string {
	if m == nil {
		return ""
	}
	return m.ID
}
