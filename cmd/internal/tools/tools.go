package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

// SimulationStats is the on disk record of a channel simulation sweep:
// which simulator produced it, which code it ran against, and the stats
// per crossover probability.
type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[float64]benchmarking.Stats
}

// JSON object keys must be strings so the float64 keys round-trip
// through a shadow struct.
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

// Md5Sum fingerprints an H matrix so results files can be tied to the
// code they were generated against.
func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(H.String())))
}

// LoadLinearBlockECC reads a linearblock code from a JSON file.
func LoadLinearBlockECC(filepath string) (*linearblock.LinearBlock, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("the ECC_JSON_FILE must exist")
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}

	var ecc linearblock.LinearBlock
	err = json.Unmarshal(bs, &ecc)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %v", filepath, err)
	}

	return &ecc, nil
}

// LoadResults reads a SimulationStats JSON file; a missing file is not
// an error, it returns nil so the caller starts fresh.
func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %v", filepath, err)
	}
	return &stat, nil
}

// SaveResults writes a SimulationStats JSON file.
func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %v", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %v", filepath, err)
	}
	return nil
}

// LoadBitVector parses a received bit vector of expected length n from
// either a file of '0'/'1' characters or a literal bit string argument;
// whitespace and commas are ignored.
func LoadBitVector(arg string, n int) (mat.SparseVector, error) {
	text := arg
	if _, err := os.Stat(arg); err == nil {
		bs, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("error while reading file %v: %v", arg, err)
		}
		text = string(bs)
	}

	result := mat.CSRVec(n)
	count := 0
	for _, r := range text {
		switch r {
		case '0', '1':
			if count >= n {
				count++
				continue
			}
			if r == '1' {
				result.Set(count, 1)
			}
			count++
		case ' ', '\t', '\n', '\r', ',':
		default:
			return nil, fmt.Errorf("unexpected character %q in bit vector", r)
		}
	}
	if count != n {
		return nil, fmt.Errorf("bit vector length == %v is required but found %v", n, count)
	}
	return result, nil
}
