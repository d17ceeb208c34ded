package ctdf

import (
	"encoding/json"
	"sort"
)

const (
	TagWalking     = "walking"
	TagBike        = "bike"
	TagCar         = "car"
	TagBss         = "bss"
	TagCarNoPark   = "car_no_park"
	TagRidesharing = "ridesharing"
	TagTaxi        = "taxi"

	TagNonPT            = "non_pt"
	TagNonPTWalking     = "non_pt_walking"
	TagNonPTBike        = "non_pt_bike"
	TagNonPTCar         = "non_pt_car"
	TagNonPTCarNoPark   = "non_pt_car_no_park"
	TagNonPTRidesharing = "non_pt_ridesharing"
	TagNonPTTaxi        = "non_pt_taxi"

	TagBikeInPT = "bike_in_pt"
	TagReliable = "reliable"
	TagEcologic = "ecologic"

	// Only ever rendered, see Journey.RenderedTags
	TagToDelete             = "to_delete"
	TagDeletedBecausePrefix = "deleted_because_"
)

// FallbackModeTags are the tags set by mode tagging, one per journey
var FallbackModeTags = []string{
	TagWalking,
	TagBike,
	TagCar,
	TagBss,
	TagCarNoPark,
	TagRidesharing,
	TagTaxi,
}

// TagSet is a sorted set of classification tags. Adding an existing tag is a no-op.
type TagSet []string

func NewTagSet(tags ...string) TagSet {
	var set TagSet
	for _, tag := range tags {
		set.Add(tag)
	}
	return set
}

func (t *TagSet) Add(tag string) {
	i := sort.SearchStrings(*t, tag)
	if i < len(*t) && (*t)[i] == tag {
		return
	}

	*t = append(*t, "")
	copy((*t)[i+1:], (*t)[i:])
	(*t)[i] = tag
}

func (t *TagSet) Remove(tag string) {
	i := sort.SearchStrings(*t, tag)
	if i < len(*t) && (*t)[i] == tag {
		*t = append((*t)[:i], (*t)[i+1:]...)
	}
}

func (t TagSet) Has(tag string) bool {
	i := sort.SearchStrings(t, tag)
	return i < len(t) && t[i] == tag
}

func (t TagSet) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

func (t TagSet) Intersect(tags []string) []string {
	var common []string
	for _, tag := range tags {
		if t.Has(tag) {
			common = append(common, tag)
		}
	}
	return common
}

// UnmarshalJSON keeps the set sorted whatever order the engine sent the tags in
func (t *TagSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}

	*t = NewTagSet(tags...)
	return nil
}
