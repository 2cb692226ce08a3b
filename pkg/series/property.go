// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package series

// KnownProperty lists the well known header properties of the
// TimeSeries.JSON format.
type KnownProperty int

const (
	PropVersion KnownProperty = iota
	PropName
	PropDescription
	PropSource
	PropOrganization
	PropLicense
	PropLocation
	PropTimeStart
	PropTimeEnd
	PropTimeStep
	PropDataURI
)

// knownPropertyKeys holds the key of each property as it appears on
// file, in declaration order.
var knownPropertyKeys = [...]string{
	PropVersion:      "version",
	PropName:         "name",
	PropDescription:  "description",
	PropSource:       "source",
	PropOrganization: "organization",
	PropLicense:      "license",
	PropLocation:     "location",
	PropTimeStart:    "timeStart",
	PropTimeEnd:      "timeEnd",
	PropTimeStep:     "timeStep",
	PropDataURI:      "dataUri",
}

// Key returns the key used when the property is written to file.
func (p KnownProperty) Key() string {
	return knownPropertyKeys[p]
}

func (p KnownProperty) String() string {
	return p.Key()
}

// KnownPropertyByKey resolves a header key to its well known property,
// or reports false if the key is not well known.
func KnownPropertyByKey(key string) (KnownProperty, bool) {
	for p, k := range knownPropertyKeys {
		if k == key {
			return KnownProperty(p), true
		}
	}
	return 0, false
}
