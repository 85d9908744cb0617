package similarity_test

import (
	"testing"

	"github.com/okian/matchpoint/internal/domain/names"
	"github.com/okian/matchpoint/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNameScorer_Pair(t *testing.T) {
	Convey("Given a name scorer", t, func() {
		scorer := similarity.NewNameScorer()

		Convey("When both pairs are identical and aligned", func() {
			score, swapped := scorer.Pair(
				similarity.Pair{Home: "novak djokovic", Away: "carlos alcaraz"},
				similarity.Pair{Home: "novak djokovic", Away: "carlos alcaraz"},
			)

			Convey("Then the score is 1 and orientation is aligned", func() {
				So(score, ShouldEqual, 1.0)
				So(swapped, ShouldBeFalse)
			})
		})

		Convey("When home and away are reversed across providers", func() {
			aligned, _ := scorer.Pair(
				similarity.Pair{Home: "alice", Away: "bob"},
				similarity.Pair{Home: "alice", Away: "bob"},
			)
			score, swapped := scorer.Pair(
				similarity.Pair{Home: "alice", Away: "bob"},
				similarity.Pair{Home: "bob", Away: "alice"},
			)

			Convey("Then the swapped orientation scores the same and is recorded", func() {
				So(score, ShouldEqual, aligned)
				So(swapped, ShouldBeTrue)
			})
		})

		Convey("When names differ only in token order and punctuation", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: names.Normalize("J. Smith"), Away: names.Normalize("A. Jones")},
				similarity.Pair{Home: names.Normalize("Smith, J."), Away: names.Normalize("Jones, A.")},
			)

			Convey("Then token overlap treats them as identical", func() {
				So(score, ShouldEqual, 1.0)
			})
		})

		Convey("When doubles pairings are written in either order", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: "alice/bob", Away: "carol/dave"},
				similarity.Pair{Home: "bob/alice", Away: "dave/carol"},
			)

			Convey("Then the separator does not affect the score", func() {
				So(score, ShouldEqual, 1.0)
			})
		})

		Convey("When both names are the unknown sentinel", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: names.Unknown, Away: names.Unknown},
				similarity.Pair{Home: names.Unknown, Away: names.Unknown},
			)

			Convey("Then the score is forced to zero", func() {
				So(score, ShouldEqual, 0.0)
			})
		})

		Convey("When one side is the unknown sentinel", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: names.Unknown, Away: "bob"},
				similarity.Pair{Home: names.Unknown, Away: "bob"},
			)

			Convey("Then only the known name contributes", func() {
				So(score, ShouldEqual, 0.5)
			})
		})

		Convey("When names are completely different", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: "xu", Away: "qi"},
				similarity.Pair{Home: "bo", Away: "al"},
			)

			Convey("Then the score stays low", func() {
				So(score, ShouldBeLessThan, 0.5)
			})
		})

		Convey("Then scoring is symmetric", func() {
			a := similarity.Pair{Home: "iga swiatek", Away: "coco gauff"}
			b := similarity.Pair{Home: "i. swiatek", Away: "c. gauff"}
			ab, _ := scorer.Pair(a, b)
			ba, _ := scorer.Pair(b, a)
			So(ab, ShouldEqual, ba)
		})
	})
}

func TestNameScorer_WithoutLevenshtein(t *testing.T) {
	Convey("Given a scorer without the edit-distance fallback", t, func() {
		scorer := similarity.NewNameScorer(similarity.WithoutLevenshtein())

		Convey("When names share no tokens", func() {
			score, _ := scorer.Pair(
				similarity.Pair{Home: "smith", Away: "jones"},
				similarity.Pair{Home: "smyth", Away: "jones"},
			)

			Convey("Then near-identical spellings get no edit-distance credit", func() {
				So(score, ShouldEqual, 0.5)
			})
		})
	})
}
