package compaction

import "sort"

// Group partitions objects by their partition key at granularity g.
// Every object lands in exactly one group, no group is empty, groups are
// sorted by key and members keep timestamp order.
func Group(objects []SourceObject, g Granularity) []MergeGroup {
	index := make(map[string]int)
	var groups []MergeGroup

	for _, obj := range objects {
		obj.PartitionKey = g.PartitionKey(obj.Timestamp)

		i, ok := index[obj.PartitionKey]
		if !ok {
			i = len(groups)
			index[obj.PartitionKey] = i
			groups = append(groups, MergeGroup{Key: obj.PartitionKey})
		}
		groups[i].Members = append(groups[i].Members, obj)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	for _, group := range groups {
		members := group.Members
		sort.SliceStable(members, func(i, j int) bool {
			if !members[i].Timestamp.Equal(members[j].Timestamp) {
				return members[i].Timestamp.Before(members[j].Timestamp)
			}
			return members[i].Key < members[j].Key
		})
	}

	return groups
}
