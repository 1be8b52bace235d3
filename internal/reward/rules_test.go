package reward_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/racelog/internal/reward"
	"github.com/san-kum/racelog/internal/telemetry"
)

// allConditions enumerates every combination of the eight flags.
func allConditions() []telemetry.Conditions {
	out := make([]telemetry.Conditions, 0, 256)
	for bits := 0; bits < 256; bits++ {
		set := func(i int) bool { return bits&(1<<i) != 0 }
		out = append(out, telemetry.Conditions{
			NearCentre:              set(0),
			QuiteNearCentre:         set(1),
			HeadingInRightDirection: set(2),
			TurningHard:             set(3),
			GoingStraight:           set(4),
			GoingFast:               set(5),
			GoingSlowly:             set(6),
			CorrectingCourse:        set(7),
		})
	}
	return out
}

var _ = Describe("Judge", func() {
	limits := reward.DefaultLimits()

	judge := func(s reward.Snapshot) reward.Outcome {
		c, err := reward.Derive(s, limits)
		Expect(err).NotTo(HaveOccurred())
		return reward.Judge(s, c)
	}

	DescribeTable("decides the rule from the snapshot",
		func(edit func(*reward.Snapshot), rule int, level reward.Level) {
			s := baseSnapshot()
			edit(&s)

			out := judge(s)
			Expect(out.Rule).To(Equal(rule))
			Expect(out.Level).To(Equal(level))
			Expect(out.Score).To(Equal(level.Score()))
		},
		Entry("nothing notable", func(s *reward.Snapshot) {
			s.DistanceFromCenter = 0.4
		}, 0, reward.Default),
		Entry("doing ok", func(s *reward.Snapshot) {}, 1, reward.Small),
		Entry("slowly steering back towards the centre", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.Speed = 0.3, 0.5
			s.IsLeftOfCenter, s.SteeringAngle = true, -5
		}, 2, reward.Small),
		Entry("near centre, gentle turn", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.SteeringAngle = 0.05, 5
		}, 3, reward.Small),
		Entry("tight corner", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.SteeringAngle, s.Speed = 0.2, 28, 0.5
		}, 4, reward.Big),
		Entry("fast and straight down the middle", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.Speed = 0.05, 1.9
		}, 5, reward.VeryBig),
		Entry("fast while turning hard", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.Speed, s.SteeringAngle = 0.05, 1.9, 28
		}, 6, reward.Penalise),
		Entry("fast near the edge", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.Speed = 0.4, 1.9
		}, 7, reward.Penalise),
		Entry("wheel off the track after a big reward", func(s *reward.Snapshot) {
			s.DistanceFromCenter, s.Speed = 0.05, 1.9
			s.AllWheelsOnTrack = false
		}, 8, reward.Penalise),
	)

	It("lets a later match override an earlier one", func() {
		s := baseSnapshot()
		s.DistanceFromCenter, s.SteeringAngle = 0.05, 5

		c, err := reward.Derive(s, limits)
		Expect(err).NotTo(HaveOccurred())
		Expect(reward.Rules()[1].Match(s, c)).To(BeTrue())
		Expect(reward.Rules()[3].Match(s, c)).To(BeTrue())
		Expect(reward.Judge(s, c).Rule).To(Equal(3))
	})

	It("always ends on rule 8 when a wheel is off the track", func() {
		s := baseSnapshot()
		s.AllWheelsOnTrack = false
		for _, c := range allConditions() {
			out := reward.Judge(s, c)
			Expect(out.Rule).To(Equal(8), "conditions %+v", c)
			Expect(out.Score).To(Equal(-1.0))
		}
	})

	It("only ever yields one of the fixed scores", func() {
		allowed := []float64{1.0, 0.75, 0.45, 0.1, -1.0}
		for _, onTrack := range []bool{true, false} {
			s := baseSnapshot()
			s.AllWheelsOnTrack = onTrack
			for _, c := range allConditions() {
				Expect(allowed).To(ContainElement(reward.Judge(s, c).Score))
			}
		}
	})

	It("keeps the table in evaluation order", func() {
		rules := reward.Rules()
		Expect(rules).To(HaveLen(9))
		for i, r := range rules {
			Expect(r.Number).To(Equal(i))
		}
		Expect(rules[0].Match(reward.Snapshot{}, telemetry.Conditions{})).To(BeTrue())
	})
})

var _ = Describe("Level", func() {
	DescribeTable("labels and scores",
		func(l reward.Level, label string, score float64) {
			Expect(l.String()).To(Equal(label))
			Expect(l.Score()).To(Equal(score))

			parsed, err := reward.ParseLevel(label)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(l))
		},
		Entry("very big", reward.VeryBig, "Very Big", 1.0),
		Entry("big", reward.Big, "Big", 0.75),
		Entry("small", reward.Small, "Small", 0.45),
		Entry("default", reward.Default, "Default", 0.1),
		Entry("penalise", reward.Penalise, "Penalise", -1.0),
	)

	It("rejects unknown labels", func() {
		_, err := reward.ParseLevel("Huge")
		Expect(err).To(HaveOccurred())
	})
})
