package reward_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/racelog/internal/geom"
	"github.com/san-kum/racelog/internal/reward"
)

// straightTrack runs along the x axis, so the track direction is 0 degrees.
func straightTrack() []geom.Vec2 {
	return []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
}

func baseSnapshot() reward.Snapshot {
	return reward.Snapshot{
		AllWheelsOnTrack:   true,
		X:                  1.5,
		Y:                  0,
		DistanceFromCenter: 0,
		TrackWidth:         1.0,
		Heading:            0,
		Progress:           10,
		Steps:              5,
		Speed:              1.0,
		SteeringAngle:      0,
		Waypoints:          straightTrack(),
		ClosestWaypoints:   [2]int{1, 2},
	}
}

var _ = Describe("Derive", func() {
	limits := reward.DefaultLimits()

	It("marks the centre of a wide track as near and quite near", func() {
		s := baseSnapshot()
		s.DistanceFromCenter, s.TrackWidth = 0, 10

		c, err := reward.Derive(s, limits)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.NearCentre).To(BeTrue())
		Expect(c.QuiteNearCentre).To(BeTrue())
	})

	DescribeTable("track position bands",
		func(distance float64, near, quiteNear bool) {
			s := baseSnapshot()
			s.DistanceFromCenter, s.TrackWidth = distance, 10

			c, err := reward.Derive(s, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.NearCentre).To(Equal(near))
			Expect(c.QuiteNearCentre).To(Equal(quiteNear))
		},
		Entry("on the 10% line", 1.0, true, true),
		Entry("between the bands", 2.0, false, true),
		Entry("on the 25% line", 2.5, false, true),
		Entry("outside both", 2.6, false, false),
	)

	DescribeTable("speed bands",
		func(speed float64, fast, slow bool) {
			s := baseSnapshot()
			s.Speed = speed

			c, err := reward.Derive(s, reward.Limits{MaxSpeed: 2.0, MaxSteer: 30})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.GoingFast).To(Equal(fast))
			Expect(c.GoingSlowly).To(Equal(slow))
		},
		Entry("half of max speed falls in the gap", 1.0, false, false),
		Entry("exactly 0.51 of max is slow", 1.02, false, true),
		Entry("exactly 0.9 of max is not fast", 1.8, false, false),
		Entry("above 0.9 of max is fast", 1.81, true, false),
		Entry("stopped", 0.0, false, true),
	)

	It("never reports fast and slow together", func() {
		for speed := 0.0; speed <= 2.5; speed += 0.01 {
			s := baseSnapshot()
			s.Speed = speed
			c, err := reward.Derive(s, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.GoingFast && c.GoingSlowly).To(BeFalse(), "speed %v", speed)
		}
	})

	DescribeTable("steering",
		func(angle float64, hard, straight bool) {
			s := baseSnapshot()
			s.SteeringAngle = angle

			c, err := reward.Derive(s, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.TurningHard).To(Equal(hard))
			Expect(c.GoingStraight).To(Equal(straight))
		},
		Entry("centred wheel", 0.0, false, true),
		Entry("tiny angle is not straight", 1e-9, false, false),
		Entry("at the hard-steer line", 27.0, false, false),
		Entry("past the line to the right", -27.5, true, false),
		Entry("full lock left", 30.0, true, false),
	)

	DescribeTable("correcting course",
		func(left bool, angle float64, want bool) {
			s := baseSnapshot()
			s.IsLeftOfCenter, s.SteeringAngle = left, angle

			c, err := reward.Derive(s, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.CorrectingCourse).To(Equal(want))
		},
		Entry("left of centre steering right", true, -5.0, true),
		Entry("left of centre steering left", true, 5.0, false),
		Entry("right of centre steering left", false, 5.0, true),
		Entry("right of centre steering right", false, -5.0, false),
		Entry("straight wheels never correct", true, 0.0, false),
	)

	DescribeTable("heading against the track direction",
		func(heading float64, want bool) {
			s := baseSnapshot()
			s.Heading = heading

			c, err := reward.Derive(s, limits)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.HeadingInRightDirection).To(Equal(want))
		},
		Entry("aligned", 0.0, true),
		Entry("just inside", 9.99, true),
		Entry("on the threshold", 10.0, false),
		Entry("other side", -9.5, true),
		Entry("reversed", 180.0, false),
	)

	It("uses the closest waypoints in prev, next order", func() {
		s := baseSnapshot()
		s.ClosestWaypoints = [2]int{2, 1}
		s.Heading = 180

		dir, err := reward.TrackDirection(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(dir).To(BeNumerically("~", 180, 1e-9))

		c, err := reward.Derive(s, limits)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.HeadingInRightDirection).To(BeTrue())
	})

	It("rejects closest waypoints outside the list", func() {
		s := baseSnapshot()
		s.ClosestWaypoints = [2]int{3, 4}

		_, err := reward.Derive(s, limits)
		Expect(err).To(MatchError(reward.ErrWaypointIndex))
	})
})
