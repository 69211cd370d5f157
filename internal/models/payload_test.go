package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSearchCriteria_RoundTrip(t *testing.T) {
	var criteria SearchCriteria
	require.NoError(t, json.Unmarshal([]byte(`{"neighborhood":"Kitsilano","minPrice":500000}`), &criteria))

	stored, err := criteria.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1,"data":{"neighborhood":"Kitsilano","minPrice":500000}}`, stored)

	decoded, err := DecodeSearchCriteria(stored)
	require.NoError(t, err)

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"neighborhood":"Kitsilano","minPrice":500000}`, string(out))
}

func TestSearchCriteria_PreservesNumberText(t *testing.T) {
	var criteria SearchCriteria
	require.NoError(t, json.Unmarshal([]byte(`{"max_value":12345678901234567890,"ratio":0.10}`), &criteria))

	stored, err := criteria.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSearchCriteria(stored)
	require.NoError(t, err)

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, `{"max_value":12345678901234567890,"ratio":0.10}`, string(out))
}

func TestSearchCriteria_UnmarshalPreSerializedString(t *testing.T) {
	var criteria SearchCriteria
	require.NoError(t, json.Unmarshal([]byte(`"{\"neighborhood\":\"Fairview\"}"`), &criteria))

	assert.Equal(t, "Fairview", criteria["neighborhood"])

	var padded SearchCriteria
	require.NoError(t, json.Unmarshal([]byte(`"  {\"neighborhood\":\"Fairview\"}\n"`), &padded))
	assert.Equal(t, "Fairview", padded["neighborhood"])
}

func TestSearchCriteria_UnmarshalRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"not json"`, `42`, `"null"`, `"{\"a\":1} junk"`, `"{\"a\":1}{\"b\":2}"`} {
		t.Run(input, func(t *testing.T) {
			var criteria SearchCriteria
			assert.Error(t, json.Unmarshal([]byte(input), &criteria))
		})
	}
}

func TestDecodeSearchCriteria_LegacyUnversioned(t *testing.T) {
	decoded, err := DecodeSearchCriteria(`{"neighborhood":"West End","sort_by":"tax_levy"}`)
	require.NoError(t, err)

	assert.Equal(t, "West End", decoded["neighborhood"])
	assert.Equal(t, "tax_levy", decoded["sort_by"])
}

func TestDecodeSearchCriteria_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "truncated json", raw: `{"neighborhood":`},
		{name: "trailing text", raw: `{"neighborhood":"Kitsilano"} junk`},
		{name: "plain text", raw: `Kitsilano under 1M`},
		{name: "array body", raw: `{"v":1,"data":[1,2,3]}`},
		{name: "future version", raw: `{"v":9,"data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSearchCriteria(tt.raw)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestStringList_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{name: "array", input: `["investment","view"]`, want: StringList{"investment", "view"}},
		{name: "serialized array string", input: `"[\"investment\",\"view\"]"`, want: StringList{"investment", "view"}},
		{name: "comma string", input: `"investment, view ,"`, want: StringList{"investment", "view"}},
		{name: "single word", input: `"investment"`, want: StringList{"investment"}},
		{name: "null", input: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_UnmarshalRejectsObjects(t *testing.T) {
	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestStringList_EncodeDecode(t *testing.T) {
	encoded, err := StringList{"Kitsilano", "Fairview"}.Encode()
	require.NoError(t, err)
	require.NotNil(t, encoded)
	assert.JSONEq(t, `{"v":1,"data":["Kitsilano","Fairview"]}`, *encoded)

	decoded, err := DecodeStringList(encoded)
	require.NoError(t, err)
	assert.Equal(t, StringList{"Kitsilano", "Fairview"}, decoded)
}

func TestStringList_EncodeNil(t *testing.T) {
	encoded, err := StringList(nil).Encode()
	require.NoError(t, err)
	assert.Nil(t, encoded)

	decoded, err := DecodeStringList(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestDecodeStringList_Legacy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want StringList
	}{
		{name: "bare json array", raw: `["a","b"]`, want: StringList{"a", "b"}},
		{name: "comma text", raw: `priority, waterfront`, want: StringList{"priority", "waterfront"}},
		{name: "json string", raw: `"solo"`, want: StringList{"solo"}},
		{name: "bare number", raw: `2024`, want: StringList{"2024"}},
		{name: "empty", raw: ``, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			got, err := DecodeStringList(&raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeStringList_MalformedEnvelope(t *testing.T) {
	raw := `{"v":1,"data":{"not":"a list"}}`
	_, err := DecodeStringList(&raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func criteriaGenerator() *rapid.Generator[SearchCriteria] {
	return rapid.Custom(func(t *rapid.T) SearchCriteria {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z_]{1,12}`), 0, 6, rapid.ID[string]).Draw(t, "keys")
		c := SearchCriteria{}
		for _, k := range keys {
			switch rapid.IntRange(0, 2).Draw(t, "kind_"+k) {
			case 0:
				c[k] = rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "str_"+k)
			case 1:
				c[k] = json.Number(rapid.StringMatching(`-?[1-9][0-9]{0,12}`).Draw(t, "num_"+k))
			default:
				c[k] = rapid.Bool().Draw(t, "bool_"+k)
			}
		}
		return c
	})
}

func TestSearchCriteria_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		criteria := criteriaGenerator().Draw(t, "criteria")

		stored, err := criteria.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeSearchCriteria(stored)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		want, _ := json.Marshal(criteria)
		got, _ := json.Marshal(decoded)
		if string(want) != string(got) {
			t.Fatalf("round trip changed criteria: %s != %s", want, got)
		}
	})
}

func TestStringList_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		list := StringList(rapid.SliceOf(rapid.StringMatching(`[A-Za-z0-9 ,\[\]"]{0,16}`)).Draw(t, "list"))

		encoded, err := list.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeStringList(encoded)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(decoded) != len(list) {
			t.Fatalf("length changed: %d != %d", len(decoded), len(list))
		}
		for i := range list {
			if decoded[i] != list[i] {
				t.Fatalf("item %d changed: %q != %q", i, decoded[i], list[i])
			}
		}
	})
}
