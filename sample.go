package lumiere

// SampleCourse is the built-in demo course shown when the library is empty.
func SampleCourse() Course {
	return Course{
		ID:          "demo-1",
		Title:       "Kunsten å brygge kaffe",
		Description: "En filmatisk reise inn i historien, vitenskapen og håndverket bak den perfekte koppen. Oppdag bønnens opprinnelse og mestringen av brygging.",
		Category:    "Mat & Drikke",
		CoverImage:  "https://images.unsplash.com/photo-1447933601403-0c60889eeaf6?q=80&w=2070&auto=format&fit=crop",
		Blocks: []CourseBlock{
			{
				ID:      "1",
				Type:    BlockHeader,
				Content: "Akt I: Opprinnelsen",
				Metadata: &BlockMeta{
					Description:     "Før koppen fantes bønnen.",
					BackgroundImage: "https://images.unsplash.com/photo-1497935586351-b67a49e012bf?q=80&w=2071&auto=format&fit=crop",
				},
			},
			{
				ID:      "2",
				Type:    BlockText,
				Content: "Kaffe er ikke bare en drikk. Det er et ritual, et øyeblikk av pause i en kaotisk verden. Å forstå kaffe er å forstå en historie som strekker seg over århundrer og kontinenter, fra høylandet i Etiopia til de travle kafeene i Paris.",
			},
			{
				ID:      "3",
				Type:    BlockVideo,
				Content: "https://www.youtube.com/watch?v=An6LvWQuj_8",
				Metadata: &BlockMeta{
					Title:       "Forstå Ekstraksjon",
					Description: "Hvorfor kaffen smaker som den gjør. Et dypdykk i smakens kjemi.",
				},
			},
			{
				ID:      "4",
				Type:    BlockHeader,
				Content: "Akt II: Kjemien",
				Metadata: &BlockMeta{
					Description:     "Temperatur, trykk og molekylenes dans.",
					BackgroundImage: "https://images.unsplash.com/photo-1518832553480-cd0e625ed3e6?q=80&w=2070&auto=format&fit=crop",
				},
			},
			{
				ID:      "5",
				Type:    BlockText,
				Content: "Når vann møter kaffe, begynner en kompleks kjemisk reaksjon. Temperatur, trykk og tid danser sammen for å trekke ut løselige forbindelser. For lite, og det blir surt. For mye, og det blir bittert.",
			},
		},
	}
}
