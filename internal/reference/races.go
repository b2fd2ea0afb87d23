// Package reference holds the immutable race and pace tables that link a
// runner's performance parameter to predicted times and training paces.
package reference

// Distance keys for the standard race columns.
const (
	Dist1500     = "1500m"
	DistMile     = "1mi"
	Dist5K       = "5km"
	Dist10K      = "10km"
	DistHalf     = "21km"
	DistMarathon = "42km"
)

// standardKm maps each distance key to kilometres, in ascending order of distance.
var standardKm = []struct {
	Key string
	Km  float64
}{
	{Dist1500, 1.5},
	{DistMile, 1.60934},
	{Dist5K, 5},
	{Dist10K, 10},
	{DistHalf, 21.0975},
	{DistMarathon, 42.195},
}

// DistanceKeys returns the supported race distance keys, shortest first.
func DistanceKeys() []string {
	keys := make([]string, len(standardKm))
	for i, d := range standardKm {
		keys[i] = d.Key
	}
	return keys
}

// DistanceKm returns the length of a race distance key in kilometres.
func DistanceKm(key string) (float64, bool) {
	for _, d := range standardKm {
		if d.Key == key {
			return d.Km, true
		}
	}
	return 0, false
}

// raceSeed is the Daniels VDOT race table: parameter then finish seconds for
// 1500m, mile, 5K, 10K, half and full marathon.
var raceSeed = [][7]int{
	{30, 510, 552, 1860, 3876, 8388, 17496},
	{31, 496, 536, 1806, 3762, 8136, 16980},
	{32, 482, 521, 1752, 3654, 7896, 16488},
	{33, 469, 507, 1704, 3552, 7674, 16020},
	{34, 457, 494, 1656, 3450, 7458, 15570},
	{35, 445, 481, 1614, 3360, 7254, 15138},
	{36, 434, 469, 1572, 3270, 7062, 14730},
	{37, 423, 457, 1530, 3186, 6876, 14334},
	{38, 413, 446, 1494, 3102, 6702, 13956},
	{39, 403, 435, 1458, 3024, 6534, 13596},
	{40, 394, 425, 1422, 2952, 6372, 13248},
	{41, 385, 416, 1392, 2880, 6222, 12918},
	{42, 376, 406, 1356, 2814, 6078, 12600},
	{43, 368, 398, 1326, 2748, 5940, 12300},
	{44, 360, 389, 1296, 2688, 5802, 12006},
	{45, 352, 381, 1266, 2628, 5676, 11730},
	{46, 345, 373, 1242, 2568, 5550, 11460},
	{47, 338, 365, 1212, 2514, 5430, 11202},
	{48, 331, 358, 1188, 2460, 5316, 10956},
	{49, 324, 351, 1164, 2412, 5208, 10722},
	{50, 318, 344, 1140, 2364, 5100, 10494},
	{51, 312, 337, 1116, 2316, 4998, 10278},
	{52, 306, 331, 1098, 2274, 4902, 10068},
	{53, 300, 325, 1074, 2232, 4806, 9870},
	{54, 295, 319, 1056, 2190, 4716, 9678},
	{55, 290, 313, 1038, 2154, 4632, 9492},
	{56, 285, 308, 1020, 2112, 4548, 9312},
	{57, 280, 302, 1002, 2076, 4470, 9144},
	{58, 275, 297, 984, 2040, 4392, 8976},
	{59, 270, 292, 972, 2010, 4320, 8820},
	{60, 266, 288, 954, 1974, 4248, 8664},
	{61, 262, 283, 942, 1944, 4182, 8520},
	{62, 258, 279, 924, 1914, 4116, 8376},
	{63, 254, 274, 912, 1884, 4050, 8238},
	{64, 250, 270, 900, 1860, 3990, 8106},
	{65, 246, 266, 888, 1830, 3930, 7980},
	{66, 242, 262, 876, 1806, 3876, 7860},
	{67, 239, 258, 864, 1782, 3822, 7740},
	{68, 235, 254, 852, 1758, 3768, 7626},
	{69, 232, 251, 840, 1734, 3720, 7518},
	{70, 229, 247, 834, 1716, 3672, 7410},
	{71, 226, 244, 822, 1692, 3624, 7308},
	{72, 223, 241, 810, 1674, 3582, 7212},
	{73, 220, 238, 804, 1656, 3540, 7116},
	{74, 217, 235, 792, 1632, 3498, 7026},
	{75, 214, 232, 786, 1614, 3456, 6936},
	{76, 212, 229, 774, 1596, 3420, 6852},
	{77, 209, 226, 768, 1578, 3384, 6768},
	{78, 206, 223, 756, 1560, 3348, 6690},
	{79, 204, 221, 750, 1548, 3312, 6612},
	{80, 201, 218, 744, 1530, 3282, 6540},
	{81, 199, 215, 738, 1518, 3246, 6468},
	{82, 197, 213, 726, 1500, 3216, 6396},
	{83, 194, 210, 720, 1488, 3186, 6330},
	{84, 192, 208, 714, 1470, 3156, 6264},
	{85, 190, 206, 708, 1458, 3126, 6198},
}

// RaceRow maps a performance parameter to predicted finish seconds per distance key.
type RaceRow struct {
	Param int
	Times map[string]int
}

// Time returns the finish seconds at a distance key.
func (r RaceRow) Time(key string) (int, bool) {
	t, ok := r.Times[key]
	return t, ok && t > 0
}

func buildRaces() []RaceRow {
	rows := make([]RaceRow, 0, len(raceSeed))
	for _, seed := range raceSeed {
		times := make(map[string]int, len(standardKm))
		for i, d := range standardKm {
			times[d.Key] = seed[i+1]
		}
		rows = append(rows, RaceRow{Param: seed[0], Times: times})
	}
	return rows
}
