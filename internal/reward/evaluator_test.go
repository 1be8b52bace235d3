package reward_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/racelog/internal/reward"
	"github.com/san-kum/racelog/internal/trace"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func hostParams() map[string]any {
	return map[string]any{
		"all_wheels_on_track":  true,
		"x":                    1.5,
		"y":                    0.0,
		"distance_from_center": 0.05,
		"is_left_of_center":    false,
		"heading":              2.0,
		"progress":             12.5,
		"steps":                42.0,
		"speed":                1.9,
		"steering_angle":       0.0,
		"track_width":          1.0,
		"waypoints":            []any{[]any{0.0, 0.0}, []any{1.0, 0.0}, []any{2, 0}, []any{3.0, 0.0}},
		"closest_waypoints":    []any{1, 2},
	}
}

var _ = Describe("Evaluator", func() {
	var (
		sink  *bytes.Buffer
		clock = time.Unix(1700000000, 250000000)
		eval  *reward.Evaluator
	)

	BeforeEach(func() {
		sink = &bytes.Buffer{}
		eval = reward.New(
			reward.WithSink(sink),
			reward.WithClock(func() time.Time { return clock }),
		)
	})

	It("writes a status line followed by a waypoint line", func() {
		_, err := eval.Evaluate(baseSnapshot())
		Expect(err).NotTo(HaveOccurred())

		rows := trace.TokenizeLines(sink.String())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Kind()).To(Equal(trace.KindStatus))
		Expect(rows[0]).To(HaveLen(trace.StatusFields + 2))
		Expect(rows[1].Kind()).To(Equal(trace.KindWaypoints))
	})

	It("round-trips through the trace parser", func() {
		s := baseSnapshot()
		s.DistanceFromCenter, s.SteeringAngle, s.Heading = 0.05, -7.25, 1.5

		res, err := eval.Evaluate(s)
		Expect(err).NotTo(HaveOccurred())

		track, err := trace.LoadTrack(sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(track.Statuses).To(HaveLen(1))
		Expect(track.Statuses[0]).To(Equal(res.Status))
		Expect(track.Waypoints).To(Equal(s.WaypointRecords()))

		got := track.Statuses[0]
		Expect(got.Timestamp).To(BeNumerically("~", 1700000000.25, 1e-6))
		Expect(got.RuleNumber).To(Equal(res.Outcome.Rule))
		Expect(got.RuleDescription).To(Equal(res.Outcome.Description))
		Expect(got.RewardLevel).To(Equal(res.Outcome.Level.String()))
		Expect(got.Conditions).To(Equal(res.Conditions))
		Expect(got.MaxSpeed).To(Equal(reward.DefaultMaxSpeed))
		Expect(got.MaxSteer).To(Equal(reward.DefaultMaxSteer))
	})

	It("escapes spaces in the free-text fields", func() {
		_, err := eval.Evaluate(baseSnapshot())
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.String()).To(ContainSubstring(" Doing_OK;_not_doing_great. Small 0.45\n"))
	})

	It("measures speed against the configured action space", func() {
		eval = reward.New(
			reward.WithSink(sink),
			reward.WithLimits(reward.Limits{MaxSpeed: 4.0, MaxSteer: 30}),
		)
		s := baseSnapshot()
		s.Speed = 1.9

		res, err := eval.Evaluate(s)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Conditions.GoingFast).To(BeFalse())
		Expect(res.Conditions.GoingSlowly).To(BeTrue())
		Expect(res.Status.MaxSpeed).To(Equal(4.0))
	})

	It("keeps no state between calls", func() {
		off := baseSnapshot()
		off.AllWheelsOnTrack = false

		first, err := eval.Evaluate(baseSnapshot())
		Expect(err).NotTo(HaveOccurred())
		_, err = eval.Evaluate(off)
		Expect(err).NotTo(HaveOccurred())
		again, err := eval.Evaluate(baseSnapshot())
		Expect(err).NotTo(HaveOccurred())

		Expect(again.Outcome).To(Equal(first.Outcome))
	})

	It("reports sink failures", func() {
		eval = reward.New(reward.WithSink(failingWriter{}))
		_, err := eval.Evaluate(baseSnapshot())
		Expect(err).To(MatchError(ContainSubstring("sink closed")))
	})

	Describe("Reward", func() {
		It("scores the simulator's parameter map", func() {
			score, err := eval.Reward(hostParams())
			Expect(err).NotTo(HaveOccurred())
			Expect(score).To(Equal(1.0))

			track, err := trace.LoadTrack(sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(track.Statuses[0].Steps).To(Equal(42))
			Expect(track.Statuses[0].RewardLevel).To(Equal("Very Big"))
			Expect(track.Waypoints).To(HaveLen(4))
		})

		It("penalises a wheel off the track", func() {
			params := hostParams()
			params["all_wheels_on_track"] = false

			score, err := eval.Reward(params)
			Expect(err).NotTo(HaveOccurred())
			Expect(score).To(Equal(-1.0))
		})

		It("fails on a missing key without writing anything", func() {
			params := hostParams()
			delete(params, "closest_waypoints")

			_, err := eval.Reward(params)
			var missing *reward.MissingFieldError
			Expect(errors.As(err, &missing)).To(BeTrue())
			Expect(missing.Key).To(Equal("closest_waypoints"))
			Expect(sink.Len()).To(BeZero())
		})
	})
})

var _ = Describe("SnapshotFromParams", func() {
	It("reads every required key", func() {
		s, err := reward.SnapshotFromParams(hostParams())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Steps).To(Equal(42))
		Expect(s.Speed).To(Equal(1.9))
		Expect(s.Waypoints).To(HaveLen(4))
		Expect(s.Waypoints[2].X).To(Equal(2.0))
		Expect(s.ClosestWaypoints).To(Equal([2]int{1, 2}))
	})

	It("reports each missing key", func() {
		for _, key := range reward.RequiredParams {
			params := hostParams()
			delete(params, key)

			_, err := reward.SnapshotFromParams(params)
			var missing *reward.MissingFieldError
			Expect(errors.As(err, &missing)).To(BeTrue(), key)
			Expect(missing.Key).To(Equal(key))
		}
	})

	DescribeTable("rejects badly typed values",
		func(key string, value any) {
			params := hostParams()
			params[key] = value

			_, err := reward.SnapshotFromParams(params)
			Expect(err).To(MatchError(reward.ErrFieldType))
		},
		Entry("string speed", "speed", "fast"),
		Entry("numeric flag", "all_wheels_on_track", 1),
		Entry("fractional steps", "steps", 4.5),
		Entry("steps beyond int range", "steps", 1e300),
		Entry("steps overflowing uint64", "steps", ^uint64(0)),
		Entry("single closest waypoint", "closest_waypoints", []any{1}),
		Entry("waypoint triple", "waypoints", []any{[]any{1.0, 2.0, 3.0}}),
	)
})
