package linearblock

import (
	"math/rand"
	"reflect"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestToSystematicToNonSystematic(t *testing.T) {
	vec := mat.DOKVec(100)
	columns := make([]int, vec.Len())
	for i := 0; i < vec.Len(); i++ {
		vec.Set(i, rand.Intn(2))
		columns[i] = i
	}

	rand.Shuffle(len(columns), func(i, j int) {
		columns[i], columns[j] = columns[j], columns[i]
	})

	swapped := ToSystematic(vec, columns)

	actual := ToNonSystematic(swapped, columns)

	if !reflect.DeepEqual(vec, actual) {
		t.Fatalf("expected %v but found %v", vec, actual)
	}
}
