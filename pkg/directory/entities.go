package directory

// Entity identifies one directory collection served by the generic query
// builder.
type Entity string

const (
	Users        Entity = "users"
	Groups       Entity = "groups"
	Applications Entity = "applications"
	Devices      Entity = "devices"
)

// entityMeta is the per-entity configuration that drives the generic query
// builder: collection path, searchable fields, the activity timestamp used
// for inactivity windows, and relationship sub-paths.
type entityMeta struct {
	// path is the collection path relative to the API root
	path string

	// searchFields are the fields covered by the disjunctive startswith
	// search filter, in the order they appear in the filter
	searchFields []string

	// activityField is the timestamp compared against the inactivity anchor
	// ("" when the entity has no inactivity notion)
	activityField string

	// relations maps relationship names to sub-paths under an item
	relations map[string]string
}

var entities = map[Entity]entityMeta{
	Users: {
		path:          "/users",
		searchFields:  []string{"displayName", "givenName", "surname", "mail", "userPrincipalName"},
		activityField: "signInActivity/lastSignInDateTime",
		relations: map[string]string{
			"groups":  "memberOf",
			"devices": "ownedDevices",
		},
	},
	Groups: {
		path:         "/groups",
		searchFields: []string{"displayName", "mail"},
		relations: map[string]string{
			"members": "members",
			"owners":  "owners",
		},
	},
	Applications: {
		path:         "/applications",
		searchFields: []string{"displayName"},
		relations: map[string]string{
			"owners": "owners",
		},
	},
	Devices: {
		path:          "/devices",
		searchFields:  []string{"displayName", "deviceId", "operatingSystem"},
		activityField: "approximateLastSignInDateTime",
		relations: map[string]string{
			"registeredOwners": "registeredOwners",
			"registeredUsers":  "registeredUsers",
		},
	},
}
