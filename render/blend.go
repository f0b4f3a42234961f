package render

import "github.com/milk9111/tilekit/project"

type blendFunc func(existing, c project.Color) project.Color

func blender(mode project.BlendMode) blendFunc {
	switch mode {
	case project.BlendAdd:
		return addBlend
	case project.BlendSubtract:
		return subtractBlend
	case project.BlendMultiply:
		return multiplyBlend
	default:
		return normalBlend
	}
}

func normalBlend(_, c project.Color) project.Color { return c }

func addBlend(existing, c project.Color) project.Color {
	return combine(existing, c, func(e, a int) int { return e + a })
}

func subtractBlend(existing, c project.Color) project.Color {
	return combine(existing, c, func(e, a int) int { return e - a })
}

func multiplyBlend(existing, c project.Color) project.Color {
	return combine(existing, c, func(e, a int) int { return e * a / 16 })
}

// combine applies op per 5-bit channel, saturating to 0..31.
func combine(existing, c project.Color, op func(e, a int) int) project.Color {
	er, eg, eb := existing.Components()
	cr, cg, cb := c.Components()
	ch := func(e, a uint8) uint8 {
		return uint8(min(max(op(int(e), int(a)), 0), 0x1f))
	}
	return project.RGB(ch(er, cr), ch(eg, cg), ch(eb, cb))
}

// alphaBlend mixes the blended colour back with the existing pixel. Alpha is
// the weight of the existing pixel out of 16; zero keeps the blended colour.
func alphaBlend(existing, c project.Color, alpha uint8, blend blendFunc) project.Color {
	mixed := blend(existing, c)
	if alpha == 0 {
		return mixed
	}
	a := int(min(alpha, project.MaxAlpha))
	return combine(mixed, existing, func(m, e int) int {
		return (m*(16-a) + e*a) / 16
	})
}
