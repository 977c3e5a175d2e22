package mathutil

// Origin is the world origin. The renderer is Y-up, right-handed, with the
// default camera looking down -Z.
var Origin = Vec3{0, 0, 0}
