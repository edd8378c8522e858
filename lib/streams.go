package lib

import (
	"net/url"
)

type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeBoolean   FieldType = "boolean"
)

type Field struct {
	Name string
	Type FieldType
}

// StreamDefinition describes one HubSpot entity exposed as a stream.
type StreamDefinition struct {
	Name                 string
	SearchPath           string
	FullPath             string
	PropertiesObjectType string
	PrimaryKeys          []string
	ReplicationKey       string
	Schema               []Field

	// Properties is the static property allow-list. A nil slice means the
	// list is resolved from the properties endpoint.
	Properties []string

	// HistoryProperties is the static propertiesWithHistory list, used when WithHistory is set.
	HistoryProperties []string
	WithHistory       bool

	// ForceGet keeps the stream on the list endpoint even in search mode.
	ForceGet bool

	// Params are added to every page request.
	Params url.Values
}

// ContactsProperties is the curated contact property list. Since 2023-07-12 the
// full list no longer fits in a request URI (414 URI Too Long).
var ContactsProperties = []string{
	"hs_object_id",
	"email",
	"firstname",
	"lastname",
	"associatedcompanyid",
	"hs_date_entered_lead",
	"first_conversion_event_name",
	"leadstatus",
	"contact_status__c",
	"salesforceleadid",
	"salesforcecontactid",
	"salesforceaccountid",
	"salesforceownerid",
	"salesforcecampaignids",
	"product_trial_registration_date__c",
	"product_trial_status__c",
	"mql_score__c",
	"mqled_on__c",
	"original_mql_date__c",
	"lead_rating__c",
	"lead_rating_del__c",
	"campaign_attribution_field___new",
	"hs_analytics_source",
	"hs_analytics_source_data_1",
	"hs_analytics_source_data_2",
	"keyword__c",
	"hs_analytics_first_url",
	"hs_analytics_last_url",
	"hs_analytics_first_referrer",
	"hs_analytics_last_referrer",
	"hasoptedintoemail__c",
	"hs_email_optout",
	"lead_source_original___new",
	"hs_email_domain",
	"country",
	"auth0_email_verification",
	"to_be_deleted__c",
	"gacid",
	"hs_google_click_id",
	"hs_last_sales_activity_timestamp",
	"form_gated_assets_url",
	"hs_latest_source",
	"hs_latest_source_data_1",
	"hs_latest_source_data_2",
	"hs_latest_source_timestamp",
	"hs_analytics_first_visit_timestamp",
	"hs_analytics_last_visit_timestamp",
	"hs_analytics_first_timestamp",
	"hs_analytics_last_timestamp",
	"data_sources_form_field",
}

var ContactsStream = StreamDefinition{
	Name:                 "contacts",
	SearchPath:           "/crm/v3/objects/contacts/search",
	FullPath:             "/crm/v3/objects/contacts",
	PropertiesObjectType: "contacts",
	PrimaryKeys:          []string{"id"},
	ReplicationKey:       "hs_lastmodifieddate",
	Schema: []Field{
		{"id", FieldTypeString},
		{"properties", FieldTypeString},
		{"createdAt", FieldTypeTimestamp},
		{"updatedAt", FieldTypeTimestamp},
		{"archived", FieldTypeBoolean},
		{"archivedAt", FieldTypeTimestamp},
		{"associations", FieldTypeString},
	},
	Properties: ContactsProperties,
}

var ContactsHistoryStream = StreamDefinition{
	Name:                 "contacts_history",
	SearchPath:           "/crm/v3/objects/contacts",
	FullPath:             "/crm/v3/objects/contacts",
	PropertiesObjectType: "contacts",
	PrimaryKeys:          []string{"id"},
	ReplicationKey:       "lastmodifieddate",
	Schema: []Field{
		{"id", FieldTypeString},
		{"createdAt", FieldTypeTimestamp},
		{"updatedAt", FieldTypeTimestamp},
		{"propertiesWithHistory", FieldTypeString},
	},
	Properties: []string{"hs_object_id"},
	HistoryProperties: []string{
		"email",
		"hs_analytics_last_url",
		"hs_analytics_last_referrer",
	},
	WithHistory: true,
	ForceGet:    true,
}

var TicketsAssociationsStream = StreamDefinition{
	Name:                 "tickets_associations",
	SearchPath:           "/crm/v4/objects/tickets",
	FullPath:             "/crm/v4/objects/tickets",
	PropertiesObjectType: "tickets",
	PrimaryKeys:          []string{"id"},
	Schema: []Field{
		{"id", FieldTypeString},
		{"updatedAt", FieldTypeTimestamp},
		{"archived", FieldTypeBoolean},
		{"associations", FieldTypeString},
	},
	Properties: []string{},
	ForceGet:   true,
	Params:     url.Values{"associations": []string{"companies,contacts"}},
}

// Streams returns every stream this source exposes, in discovery order.
func Streams() []StreamDefinition {
	return []StreamDefinition{
		ContactsStream,
		ContactsHistoryStream,
		TicketsAssociationsStream,
	}
}

func LookupStream(name string) (StreamDefinition, bool) {
	for _, def := range Streams() {
		if def.Name == name {
			return def, true
		}
	}
	return StreamDefinition{}, false
}
