package disease

// Profile is the reference text returned with every diagnosis.
type Profile struct {
	Description string
	Cause       string
	Symptoms    string
	RiskFactors string
	Treatment   string
	Prevention  string
}

// Lookup returns the profile for label, or the zero Profile for labels
// outside the catalogue.
func Lookup(label Label) Profile {
	return profiles[label]
}

var profiles = map[Label]Profile{
	LabelRust: {
		Description: "Rust atau karat daun kopi adalah penyakit yang disebabkan oleh jamur Hemileia vastatrix. Penyakit ini menyerang daun kopi, ditandai dengan bercak kuning-jingga seperti serbuk pada permukaan atas dan bawah daun. Bercak ini awalnya kuning muda, kemudian berubah menjadi jingga atau oranye yang mirip serbuk. Daun yang terinfeksi akan rontok, membuat pohon menjadi gundul dan hasil kopi menurun drastis. Dalam beberapa kasus, infeksi yang tidak terkendali dapat menyebabkan pohon mati dalam beberapa tahun. Menurut Bhattacharyya et al. (2020), varietas tahan seperti S795 dan USDA762 telah dikembangkan untuk mengatasi penyakit ini. Pengendalian juga melibatkan penggunaan fungisida berbahan aktif tembaga seperti Nordox atau Bayleton, yang efektif jika digunakan sebelum infeksi terjadi. Sanitasi kebun dan pengelolaan naungan juga penting untuk menurunkan kelembapan dan mencegah penyebaran spora.",
		Cause:       "Jamur Hemileia vastatrix yang menyebar melalui spora di udara.",
		Symptoms:    "Bercak kuning di daun yang berubah cokelat. Bercak jingga pada bagian bawah daun dengan serbuk oranye. Daun rontok, pohon gundul.",
		RiskFactors: "Kelembapan tinggi, curah hujan tinggi, varietas kopi yang rentan.",
		Treatment:   "Gunakan varietas tahan seperti S795 dan USDA762. Aplikasikan fungisida berbahan aktif tembaga dengan konsentrasi 0,3% atau fungisida sistemik berbahan triadimefon.",
		Prevention:  "Sanitasi kebun, pemangkasan, dan pengelolaan naungan. Gunakan ekstrak biji mahoni atau bubur bordo sebagai fungisida nabati.",
	},
	LabelPhoma: {
		Description: "Penyakit Phoma disebabkan oleh jamur Phoma costarricensis atau Phoma sp., yang menyebar melalui spora yang terbawa angin, air hujan, atau kontak langsung dengan daun yang terinfeksi. Gejala utamanya adalah bercak cokelat gelap atau hitam pada daun dengan tepi tidak beraturan. Pada kondisi parah, infeksi dapat menyebar ke batang atau buah kopi. Menurut Zambrano et al. (2021), kelembapan tinggi dan drainase tanah yang buruk merupakan faktor utama yang meningkatkan risiko penyakit ini. Pemangkasan untuk meningkatkan ventilasi, penggunaan fungisida berbasis tembaga, dan pemberian nutrisi yang cukup sangat dianjurkan sebagai langkah pengendalian. Selain itu, sanitasi kebun dengan membuang daun yang terinfeksi dapat memutus siklus hidup jamur.",
		Cause:       "Jamur Phoma costarricensis yang menyebar melalui spora melalui angin, air hujan, atau kontak langsung.",
		Symptoms:    "Bercak cokelat gelap atau hitam dengan tepi tidak beraturan. Daun mengering dan rontok, infeksi parah dapat menjalar ke batang.",
		RiskFactors: "Kelembapan tinggi, suhu optimal 20-25°C, drainase buruk, stres tanaman akibat kurang nutrisi.",
		Treatment:   "Sanitasi kebun dengan menghilangkan daun yang terinfeksi. Gunakan fungisida berbasis tembaga atau sistemik.",
		Prevention:  "Pemangkasan untuk meningkatkan ventilasi, pemberian nutrisi yang cukup, dan pengelolaan drainase tanah.",
	},
	LabelMiner: {
		Description: "Miner atau leaf miner pada tanaman kopi adalah penyakit yang disebabkan oleh larva serangga dari keluarga Lepidoptera (ngengat) atau Diptera (lalat). Larva ini hidup dalam jaringan daun dan membentuk terowongan kecil saat memakan lapisan sel daun. Gejala yang terlihat adalah jalur atau terowongan kecil pada daun, yang menyebabkan daun menjadi kuning, mengering, dan rontok. Akibatnya, fotosintesis terganggu, yang berdampak pada penurunan kualitas dan hasil panen. Menurut Rathore et al. (2019), pengendalian biologis dengan memperkenalkan musuh alami seperti parasitoid dapat membantu menekan populasi leaf miner. Selain itu, pemantauan rutin dan penggunaan pestisida selektif yang ramah lingkungan sangat efektif dalam mencegah kerusakan yang lebih parah.",
		Cause:       "Larva serangga dari keluarga Lepidoptera (ngengat) atau Diptera (lalat) yang hidup dalam daun.",
		Symptoms:    "Jalur atau terowongan kecil pada daun. Daun menjadi kuning, mengering, dan rontok. Penurunan fotosintesis.",
		RiskFactors: "Kelebihan populasi serangga, kebun yang tidak disanitasi, kurangnya pemantauan rutin.",
		Treatment:   "Sanitasi kebun dengan menghancurkan daun yang terinfeksi. Gunakan pestisida selektif yang ramah lingkungan.",
		Prevention:  "Introduksi musuh alami seperti parasitoid. Pemantauan rutin untuk deteksi dini, dan pemberian pupuk untuk meningkatkan daya tahan tanaman.",
	},
	LabelHealthy: {
		Description: "Tanaman kopi yang sehat memiliki daun hijau tua dengan permukaan yang bersih tanpa adanya bercak, jalur, atau kerusakan lainnya. Tanaman yang sehat menunjukkan pertumbuhan yang optimal, daun tidak menguning atau rontok, dan tidak ada tanda-tanda infeksi penyakit atau serangan hama. Selain itu, tanaman yang sehat memberikan hasil panen yang maksimal dengan kualitas biji yang baik. Menurut penelitian oleh Silva et al. (2018), praktik budidaya yang baik, termasuk penggunaan pupuk organik, irigasi yang tepat, dan pemangkasan rutin, dapat menjaga kesehatan tanaman kopi.",
		Cause:       "Kondisi tumbuh yang optimal, seperti keseimbangan nutrisi, drainase tanah yang baik, dan sanitasi kebun yang terjaga.",
		Symptoms:    "Daun hijau tua tanpa bercak atau kerusakan. Tanaman menunjukkan pertumbuhan yang seragam dan sehat.",
		RiskFactors: "Perawatan tanaman yang kurang, kekurangan nutrisi, pengelolaan kebun yang buruk.",
		Treatment:   "Pastikan pemberian pupuk yang cukup, irigasi teratur, dan lakukan pemangkasan untuk menjaga ventilasi.",
		Prevention:  "Sanitasi kebun secara berkala, gunakan pupuk organik, dan pantau tanaman secara rutin untuk mendeteksi perubahan awal.",
	},
}
