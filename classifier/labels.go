package classifier

// Visual holds the star ratings shown next to a grade.
type Visual struct {
	FragmentationStars string `json:"fragmentation_stars"`
	SymmetryStars      string `json:"symmetry_stars"`
	OverallQuality     string `json:"overall_quality"`
}

// Details is the static description attached to an embryo class.
type Details struct {
	CellCount           string `json:"cell_count"`
	Fragmentation       string `json:"fragmentation"`
	Symmetry            string `json:"symmetry"`
	Description         string `json:"description"`
	TransferSuitability string `json:"transfer_suitability"`
	RiskNote            string `json:"risk_note"`
	Visual              Visual `json:"visual"`
}

// Labels are the model's output classes in logit order.
var Labels = []string{
	"2-1-1",
	"2-1-2",
	"2-1-3",
	"2-2-1",
	"2-2-2",
	"2-2-3",
	"2-3-3",
	"3-1-1",
	"3-1-2",
	"3-1-3",
	"3-2-1",
	"3-2-2",
	"3-2-3",
	"3-3-2",
	"3-3-3",
	"4-2-2",
	"Arrested",
	"Early",
	"Morula",
}

// UnknownDetails is returned for a label with no metadata entry.
var UnknownDetails = Details{
	CellCount:           "Bilinmiyor",
	Fragmentation:       "Bilinmiyor",
	Symmetry:            "Bilinmiyor",
	Description:         "Bu sınıf için açıklama bulunamadı.",
	TransferSuitability: "Bilinmiyor",
	RiskNote:            "Bilinmiyor",
	Visual: Visual{
		FragmentationStars: "☆☆☆☆☆",
		SymmetryStars:      "☆☆☆☆☆",
		OverallQuality:     "☆☆☆☆☆",
	},
}

// LookupDetails returns the metadata of label, or UnknownDetails.
func LookupDetails(label string) Details {
	if d, ok := Metadata[label]; ok {
		return d
	}
	return UnknownDetails
}

// Metadata maps every label to its clinical description (Turkish, as shown to clinicians).
var Metadata = map[string]Details{
	"2-1-1": {
		CellCount:           "2",
		Fragmentation:       "Düşük",
		Symmetry:            "İyi",
		Description:         "2 hücreli embriyo, düşük fragmentasyon seviyesinde ve iyi simetriye sahip. Blastomer düzeni düzenli.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★★★★☆",
			OverallQuality:     "★★★★☆",
		},
	},
	"2-1-2": {
		CellCount:           "2",
		Fragmentation:       "Düşük",
		Symmetry:            "Orta",
		Description:         "2 hücreli embriyo, düşük fragmentasyon seviyesinde ve orta düzeyde simetriye sahip. Blastomer düzeni kabul edilebilir.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"2-1-3": {
		CellCount:           "2",
		Fragmentation:       "Düşük",
		Symmetry:            "Kötü",
		Description:         "2 hücreli embriyo, düşük fragmentasyon seviyesinde ancak simetri açısından zayıf. Blastomer düzeninde düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli düşük-orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★★☆☆☆",
		},
	},
	"2-2-1": {
		CellCount:           "2",
		Fragmentation:       "Orta",
		Symmetry:            "İyi",
		Description:         "2 hücreli embriyo, orta düzeyde fragmentasyon ve iyi simetriye sahip. Blastomer düzeni düzenli.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★★☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"2-2-2": {
		CellCount:           "2",
		Fragmentation:       "Orta",
		Symmetry:            "Orta",
		Description:         "2 hücreli embriyo, orta düzeyde fragmentasyon ve orta düzeyde simetriye sahip. Blastomer düzeni kabul edilebilir.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"2-2-3": {
		CellCount:           "2",
		Fragmentation:       "Orta",
		Symmetry:            "Kötü",
		Description:         "2 hücreli embriyo, orta düzeyde fragmentasyon ve zayıf simetriye sahip. Blastomer düzeninde belirgin düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli düşük düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★★☆☆☆",
		},
	},
	"2-3-3": {
		CellCount:           "2",
		Fragmentation:       "Yüksek",
		Symmetry:            "Kötü",
		Description:         "2 hücreli embriyo, yüksek düzeyde fragmentasyon ve zayıf simetriye sahip. Blastomer düzeninde ciddi düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Ancak daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önemle önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli çok düşük düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★☆☆☆☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★☆☆☆☆",
		},
	},
	"3-1-1": {
		CellCount:           "3",
		Fragmentation:       "Düşük",
		Symmetry:            "İyi",
		Description:         "3 hücreli embriyo, düşük fragmentasyon seviyesinde ve iyi simetriye sahip. Blastomer düzeni düzenli, hücreler benzer boyutta.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Gelişim hızı uygun.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli iyi düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★★★★☆",
			OverallQuality:     "★★★★☆",
		},
	},
	"3-1-2": {
		CellCount:           "3",
		Fragmentation:       "Düşük",
		Symmetry:            "Orta",
		Description:         "3 hücreli embriyo, düşük fragmentasyon seviyesinde ve orta düzeyde simetriye sahip. Blastomer düzeni kabul edilebilir.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta-iyi düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"3-1-3": {
		CellCount:           "3",
		Fragmentation:       "Düşük",
		Symmetry:            "Kötü",
		Description:         "3 hücreli embriyo, düşük fragmentasyon seviyesinde ancak simetri açısından zayıf. Blastomer boyutlarında belirgin farklılıklar mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"3-2-1": {
		CellCount:           "3",
		Fragmentation:       "Orta",
		Symmetry:            "İyi",
		Description:         "3 hücreli embriyo, orta düzeyde fragmentasyon ve iyi simetriye sahip. Blastomer düzeni düzenli.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★★☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"3-2-2": {
		CellCount:           "3",
		Fragmentation:       "Orta",
		Symmetry:            "Orta",
		Description:         "3 hücreli embriyo, orta düzeyde fragmentasyon ve orta düzeyde simetriye sahip. Blastomer düzeni kabul edilebilir.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"3-2-3": {
		CellCount:           "3",
		Fragmentation:       "Orta",
		Symmetry:            "Kötü",
		Description:         "3 hücreli embriyo, orta düzeyde fragmentasyon ve zayıf simetriye sahip. Blastomer düzeninde belirgin düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli düşük düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★★☆☆☆",
		},
	},
	"3-3-2": {
		CellCount:           "3",
		Fragmentation:       "Yüksek",
		Symmetry:            "Orta",
		Description:         "3 hücreli embriyo, yüksek düzeyde fragmentasyon ve orta düzeyde simetriye sahip. Blastomer düzeninde düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önemle önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli düşük düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★☆☆☆☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★☆☆☆",
		},
	},
	"3-3-3": {
		CellCount:           "3",
		Fragmentation:       "Yüksek",
		Symmetry:            "Kötü",
		Description:         "3 hücreli embriyo, yüksek düzeyde fragmentasyon ve zayıf simetriye sahip. Blastomer düzeninde ciddi düzensizlik mevcut.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo mevcutsa, onlara öncelik verilmesi önemle önerilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli çok düşük düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★☆☆☆☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★☆☆☆☆",
		},
	},
	"4-2-2": {
		CellCount:           "4",
		Fragmentation:       "Orta",
		Symmetry:            "Orta",
		Description:         "4 hücreli embriyo, orta düzeyde fragmentasyon ve orta düzeyde simetriye sahip. Blastomer düzeni kabul edilebilir.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Daha iyi kalitede embriyo varsa, öncelik verilebilir.",
		RiskNote:            "Morfolojik yapısı göz önünde bulundurularak implantasyon potansiyeli orta düzeyde değerlendirilebilir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"Arrested": {
		CellCount:           "Belirsiz",
		Fragmentation:       "Yüksek",
		Symmetry:            "Kötü",
		Description:         "Gelişimi durmuş embriyo. Bölünme aşamasında duraksama görülmüştür. Hücre bölünmesinde ilerleme yok.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için genellikle uygun bulunmaz. Alternatif embriyoların değerlendirilmesi önerilir.",
		RiskNote:            "Gelişimi durmuş embriyolarda implantasyon potansiyeli çok düşük düzeyde değerlendirilir.",
		Visual: Visual{
			FragmentationStars: "★☆☆☆☆",
			SymmetryStars:      "★☆☆☆☆",
			OverallQuality:     "★☆☆☆☆",
		},
	},
	"Early": {
		CellCount:           "2-4",
		Fragmentation:       "Değişken",
		Symmetry:            "Değişken",
		Description:         "Erken bölünme aşamasında embriyo. Gelişim devam ediyor. Blastomer düzeni henüz tam olarak değerlendirilemez.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak daha ileri gelişim aşamasında değerlendirilmesi önerilir. Gözlem altında tutulması uygundur.",
		RiskNote:            "Erken aşamada olduğu için gelişim ve implantasyon potansiyeli hakkında kesin değerlendirme yapmak için daha fazla gözlem gereklidir.",
		Visual: Visual{
			FragmentationStars: "★★★☆☆",
			SymmetryStars:      "★★★☆☆",
			OverallQuality:     "★★★☆☆",
		},
	},
	"Morula": {
		CellCount:           "16+",
		Fragmentation:       "Düşük",
		Symmetry:            "İyi",
		Description:         "Kompakt hücre aşamasında embriyo. Blastokiste geçiş bekleniyor. Hücreler bir araya gelerek solid bir kütle oluşturmuş.",
		TransferSuitability: "Klinik değerlendirmeye bağlı olarak transfer için değerlendirilebilir. Blastokist aşamasına geçiş potansiyeli yüksek olan embriyolardır.",
		RiskNote:            "Morula aşamasındaki embriyolar, blastokist aşamasına geçiş yapabilirse implantasyon potansiyeli yüksek düzeyde değerlendirilebilir. Trofektoderm gelişimi bu aşamada başlamaktadır.",
		Visual: Visual{
			FragmentationStars: "★★★★☆",
			SymmetryStars:      "★★★★☆",
			OverallQuality:     "★★★★☆",
		},
	},
}
